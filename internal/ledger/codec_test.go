package ledger

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/saadjs/fooddiary/internal/model"
)

func TestEntryCodecRoundTrip(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("CET", 3600)
	stamp := time.Date(2026, 1, 2, 19, 5, 0, 0, loc)

	cases := []model.DiaryEntry{
		{ID: "a1", Kind: model.KindProduct, Name: "Milk", Calories: 42, Time: stamp},
		{Kind: model.KindRecipe, Name: "Pancakes", Calories: 520, Time: stamp, Ingredients: "flour, eggs, milk"},
		{Kind: model.KindProduct, Name: "Water", Calories: 0, Time: stamp},
	}
	c := entryCodec(loc)
	for _, want := range cases {
		raw, err := c.encode(want)
		if err != nil {
			t.Fatalf("encode %+v: %v", want, err)
		}
		got, err := c.decode(raw)
		if err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if got.ID != want.ID || got.Kind != want.Kind || got.Name != want.Name || got.Calories != want.Calories || got.Ingredients != want.Ingredients {
			t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
		}
		if !got.Time.Equal(want.Time) {
			t.Fatalf("time mismatch: got %v want %v", got.Time, want.Time)
		}
	}
}

func TestEncodeEntryTruncatesToMinute(t *testing.T) {
	t.Parallel()
	e := model.DiaryEntry{Kind: model.KindProduct, Name: "Tea", Calories: 2, Time: time.Date(2026, 5, 9, 7, 3, 59, 999, time.UTC)}
	raw, err := encodeEntry(e)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeEntry(raw, time.UTC)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := time.Date(2026, 5, 9, 7, 3, 0, 0, time.UTC); !got.Time.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.Time)
	}
}

func TestEncodeEntryWireShape(t *testing.T) {
	t.Parallel()
	stamp := time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)

	product, err := encodeEntry(model.DiaryEntry{Kind: model.KindProduct, Name: "Cheese", Calories: 110, Time: stamp})
	if err != nil {
		t.Fatalf("encode product: %v", err)
	}
	if got, want := string(product), `{"productName":"Cheese","calories":110,"time":"31.12.2026 23:59"}`; got != want {
		t.Fatalf("product wire:\n got %s\nwant %s", got, want)
	}

	recipe, err := encodeEntry(model.DiaryEntry{Kind: model.KindRecipe, Name: "Salad", Calories: 120, Time: stamp, Ingredients: "lettuce, oil"})
	if err != nil {
		t.Fatalf("encode recipe: %v", err)
	}
	if got, want := string(recipe), `{"type":"recipe","name":"Salad","ingredients":"lettuce, oil","calories":120,"time":"31.12.2026 23:59"}`; got != want {
		t.Fatalf("recipe wire:\n got %s\nwant %s", got, want)
	}
}

func TestDecodeEntryAcceptsLegacyShapes(t *testing.T) {
	t.Parallel()
	cases := map[string]model.DiaryEntry{
		`{"productName":"Egg","calories":78,"time":"01.02.2026 09:15"}`:                  {Kind: model.KindProduct, Name: "Egg", Calories: 78},
		`{"type":"product","productName":"Egg","calories":78,"time":"01.02.2026 09:15"}`: {Kind: model.KindProduct, Name: "Egg", Calories: 78},
		`{"type":"recipe","name":"Omelette","ingredients":"eggs","calories":200,"time":"01.02.2026 09:15"}`: {
			Kind: model.KindRecipe, Name: "Omelette", Ingredients: "eggs", Calories: 200,
		},
	}
	for raw, want := range cases {
		got, err := decodeEntry(json.RawMessage(raw), time.UTC)
		if err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if got.Kind != want.Kind || got.Name != want.Name || got.Calories != want.Calories || got.Ingredients != want.Ingredients {
			t.Fatalf("decode %s: got %+v", raw, got)
		}
		if got.ID != "" {
			t.Fatalf("legacy entry should have no id, got %q", got.ID)
		}
		if want := time.Date(2026, 2, 1, 9, 15, 0, 0, time.UTC); !got.Time.Equal(want) {
			t.Fatalf("decode %s: expected time %v, got %v", raw, want, got.Time)
		}
	}
}

func TestDecodeEntryRejectsMalformed(t *testing.T) {
	t.Parallel()
	cases := []string{
		`"just a string"`,
		`{"calories":10,"time":"01.02.2026 09:15"}`,
		`{"productName":"","calories":10,"time":"01.02.2026 09:15"}`,
		`{"productName":"Egg","time":"01.02.2026 09:15"}`,
		`{"productName":"Egg","calories":-1,"time":"01.02.2026 09:15"}`,
		`{"productName":"Egg","calories":"ten","time":"01.02.2026 09:15"}`,
		`{"productName":"Egg","calories":10}`,
		`{"productName":"Egg","calories":10,"time":"2026-02-01T09:15:00Z"}`,
		`{"type":"recipe","productName":"Egg","calories":10,"time":"01.02.2026 09:15"}`,
		`{"type":"recipe","name":"Omelette","calories":10,"time":"01.02.2026 09:15"}`,
	}
	for _, raw := range cases {
		if _, err := decodeEntry(json.RawMessage(raw), time.UTC); !errors.Is(err, ErrParse) {
			t.Fatalf("decode %s: expected parse error, got %v", raw, err)
		}
	}
}

func TestDecodeBlobFlagsNonArrays(t *testing.T) {
	t.Parallel()
	for _, blob := range []string{"", "{}", "null", "not json", `[{"name":"x"`, `"[]"`} {
		col := decodeBlob(blob, recipeCodec.decode)
		if !col.corrupt {
			t.Fatalf("blob %q: expected corrupt", blob)
		}
	}

	col := decodeBlob(` [{"name":"Soup","ingredients":"water","calories":10}, {"name":"Bad"}] `, recipeCodec.decode)
	if col.corrupt {
		t.Fatalf("expected readable array")
	}
	if len(col.all()) != 2 || len(col.items()) != 1 || col.malformed() != 1 {
		t.Fatalf("expected 2 elements with 1 malformed, got all=%d items=%d malformed=%d", len(col.all()), len(col.items()), col.malformed())
	}
	if !errors.Is(col.firstError(), ErrParse) {
		t.Fatalf("expected parse cause, got %v", col.firstError())
	}
}
