package csvreader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderParse(t *testing.T) {
	input := strings.Join([]string{
		"Numéro de badge;Date évènements;Heure évènements;Centrale;Lecteur;Nature Evenement;Nom;Prénom;Statut;Groupe",
		"B100;15/01/2024;08:02:11;Centrale Nord;Lecteur ENTREE Hall;Utilisateur accepté;Martin;Claire;Actif;IT",
		"B200;15/01/2024;08:15:40;Centrale Nord;Lecteur ENTREE Hall;Utilisateur accepté;Durand;Paul;Actif;RH",
	}, "\n")

	records, err := NewReader().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "B100", records[0].BadgeNumber)
	assert.Equal(t, "15/01/2024", records[0].EventDate)
	assert.Equal(t, "08:02:11", records[0].EventTime)
	assert.Equal(t, "Lecteur ENTREE Hall", records[0].Reader)
	assert.Equal(t, "Martin", records[0].LastName)
	assert.Equal(t, "Claire", records[0].FirstName)
	assert.Equal(t, "IT", records[0].Group)
}

func TestReaderParseReorderedColumns(t *testing.T) {
	input := strings.Join([]string{
		"Groupe;Numéro de badge;Heure évènements;Date évènements",
		"IT;B1;09:00:00;01/02/2024",
	}, "\n")

	records, err := NewReader().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "B1", records[0].BadgeNumber)
	assert.Equal(t, "01/02/2024", records[0].EventDate)
	assert.Equal(t, "09:00:00", records[0].EventTime)
	assert.Equal(t, "IT", records[0].Group)
}

func TestReaderParseStripsBOM(t *testing.T) {
	input := "\uFEFFNuméro de badge;Date évènements\nB1;15/01/2024\n"

	records, err := NewReader().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "B1", records[0].BadgeNumber)
}

func TestReaderParseSkipsBlankRowsAndUnknownColumns(t *testing.T) {
	input := strings.Join([]string{
		"Numéro de badge;Colonne mystère;Date évènements",
		"B1;whatever;15/01/2024",
		";;",
		"B2;ignored;16/01/2024",
	}, "\n")

	records, err := NewReader().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "B1", records[0].BadgeNumber)
	assert.Equal(t, "B2", records[1].BadgeNumber)
}

func TestReaderParseRejectsUnknownHeader(t *testing.T) {
	input := "foo;bar\n1;2\n"

	_, err := NewReader().Parse(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrNoRecognizedColumns)
}

func TestReaderParseEmptyInput(t *testing.T) {
	_, err := NewReader().Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoRecognizedColumns)
}

func TestReaderParseShortRows(t *testing.T) {
	input := strings.Join([]string{
		"Numéro de badge;Date évènements;Heure évènements",
		"B1;15/01/2024",
	}, "\n")

	records, err := NewReader().Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "B1", records[0].BadgeNumber)
	assert.Empty(t, records[0].EventTime)
}
