package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-import/internal/stockimport/model"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "колво", Normalize(" Кол-во "))
	assert.Equal(t, "chanelno5", Normalize("Chanel No.5"))
	assert.Equal(t, "объем5мл", Normalize("Объём, 5 мл"))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize(" .,;! "))
	assert.Equal(t, "item_1", Normalize("Item_1"))
}

func TestDetectDelimiter(t *testing.T) {
	cases := []struct {
		header string
		want   rune
	}{
		{"a\tb\tc", '\t'},
		{"a;b;c", ';'},
		{"a,b,c", ','},
		{"a|b|c", '|'},
		{"Название;Цена, руб", ';'},
		{"single", ','},
		{`"a" b`, ','},
	}
	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectDelimiter(tc.header))
		})
	}
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("\uFEFFa,b\r\n\r\n1,2\n  \n3,4")
	require.Len(t, lines, 3)
	assert.Equal(t, Line{No: 1, Text: "a,b"}, lines[0])
	assert.Equal(t, Line{No: 3, Text: "1,2"}, lines[1])
	assert.Equal(t, Line{No: 5, Text: "3,4"}, lines[2])
}

func TestSplitFields(t *testing.T) {
	f, err := SplitFields(`"Chanel, No5", 5 ,10`, ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"Chanel, No5", "5", "10"}, f)

	f, err = SplitFields("Dior\t\t4", '\t')
	require.NoError(t, err)
	assert.Equal(t, []string{"Dior", "", "4"}, f)

	f, err = SplitFields(`Tom Ford "Oud";30`, ';')
	require.NoError(t, err)
	assert.Equal(t, []string{`Tom Ford "Oud"`, "30"}, f)

	// кавычка посреди поля тоже защищает разделитель
	f, err = SplitFields(`Chanel "No 5, Extra",5`, ',')
	require.NoError(t, err)
	assert.Equal(t, []string{`Chanel "No 5, Extra"`, "5"}, f)

	f, err = SplitFields(`"Dior ""Sauvage""";car;;`, ';')
	require.NoError(t, err)
	assert.Equal(t, []string{`Dior "Sauvage"`, "car", "", ""}, f)

	_, err = SplitFields(`"Chanel,5`, ',')
	assert.ErrorIs(t, err, ErrUnterminatedQuote)
}

func TestNormalizeSize(t *testing.T) {
	cases := []struct {
		in   string
		want model.Size
		ok   bool
	}{
		{"5", model.Size5, true},
		{"5мл", model.Size5, true},
		{"5 мл", model.Size5, true},
		{"5 ml", model.Size5, true},
		{"16 мл", model.Size16, true},
		{"20", model.Size20, true},
		{"25мл", model.Size25, true},
		{"30 ML", model.Size30, true},
		{"car", model.SizeCar, true},
		{"Автофлакон", model.SizeCar, true},
		{"авто", model.SizeCar, true},
		{"диффузор", model.SizeCar, true},
		{"Авто 5мл", model.SizeCar, true},
		{"50 мл", "", false},
		{"большой", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := NormalizeSize(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSizeLabelsRoundTrip(t *testing.T) {
	for _, s := range model.Sizes {
		got, ok := NormalizeSize(s.Label())
		require.True(t, ok, s.Label())
		assert.Equal(t, s, got)
	}
}

func TestMapSizeDefaultsToFive(t *testing.T) {
	assert.Equal(t, model.Size5, MapSize("большой"))
	assert.Equal(t, model.Size5, MapSize(""))
	assert.Equal(t, model.Size30, MapSize("30мл"))
	assert.Equal(t, model.SizeCar, MapSize("car"))
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{"12,5", 13},
		{"  7 шт ", 7},
		{"abc", 0},
		{"", 0},
		{"-5", 5},
		{"0", 0},
		{"1.234.5", 1},
		{"3,4 pcs", 3},
		{"NaN", 0},
		{"~99 ₽", 99},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := ParseQuantity(tc.in)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestResolveLocation(t *testing.T) {
	locs := []model.Location{
		{ID: "L1", Name: "ТЦ Мега"},
		{ID: "L2", Name: "Центральный магазин"},
	}

	got, ok := ResolveLocation("Мега", locs, "")
	require.True(t, ok)
	assert.Equal(t, "L1", got.ID)

	got, ok = ResolveLocation("ТЦ Мега, 2 этаж", locs, "")
	require.True(t, ok)
	assert.Equal(t, "L1", got.ID)

	got, ok = ResolveLocation("центральный", locs, "")
	require.True(t, ok)
	assert.Equal(t, ResolvedLocation{ID: "L2", Name: "Центральный магазин"}, got)

	got, ok = ResolveLocation("Склад", locs, "L2")
	require.True(t, ok)
	assert.Equal(t, "L2", got.ID)

	_, ok = ResolveLocation("Склад", locs, model.UseFromFile)
	assert.False(t, ok)

	_, ok = ResolveLocation("", locs, "")
	assert.False(t, ok)

	got, ok = ResolveLocation("", nil, "L9")
	require.True(t, ok)
	assert.Equal(t, ResolvedLocation{ID: "L9", Name: "L9"}, got)
}

func TestClosestLocation(t *testing.T) {
	locs := []model.Location{{ID: "L1", Name: "Мега"}, {ID: "L2", Name: "Аура"}}
	hint, ok := closestLocation("Мегга", locs)
	require.True(t, ok)
	assert.Equal(t, "L1", hint.ID)

	_, ok = closestLocation("совсем другое", locs)
	assert.False(t, ok)
}

func TestDamerauLevenshtein(t *testing.T) {
	assert.Equal(t, 0, damerauLevenshtein("мега", "мега"))
	assert.Equal(t, 1, damerauLevenshtein("мега", "мгеа"))
	assert.Equal(t, 3, damerauLevenshtein("", "abc"))
	assert.InDelta(t, 0.75, similarity("мега", "мегу"), 1e-9)
}
