package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/fooddiary/internal/model"
)

// TimeLayout is the dd.MM.yyyy HH:mm stamp stored with every diary entry.
const TimeLayout = "02.01.2006 15:04"

const emptyArray = "[]"

// Product entries carry productName and no type; recipe entries carry
// type "recipe", name and ingredients.
type wireEntry struct {
	Type        string  `json:"type,omitempty"`
	ProductName *string `json:"productName,omitempty"`
	Name        *string `json:"name,omitempty"`
	Ingredients *string `json:"ingredients,omitempty"`
	Calories    *int    `json:"calories"`
	Time        *string `json:"time"`
	ID          string  `json:"id,omitempty"`
}

type wireRecipe struct {
	Name        *string `json:"name"`
	Ingredients *string `json:"ingredients"`
	Calories    *int    `json:"calories"`
}

type wireProduct struct {
	Name     *string `json:"name"`
	Calories *int    `json:"calories"`
}

type wireGoal struct {
	Name     *string `json:"name"`
	Progress *int    `json:"progress"`
}

// codec binds a store key to the element encoding kept under it.
type codec[T any] struct {
	key    string
	decode func(json.RawMessage) (T, error)
	encode func(T) (json.RawMessage, error)
}

func entryCodec(loc *time.Location) codec[model.DiaryEntry] {
	return codec[model.DiaryEntry]{
		key:    KeyDiaryEntries,
		decode: func(raw json.RawMessage) (model.DiaryEntry, error) { return decodeEntry(raw, loc) },
		encode: encodeEntry,
	}
}

var recipeCodec = codec[model.Recipe]{
	key: KeyRecipes,
	decode: func(raw json.RawMessage) (model.Recipe, error) {
		var w wireRecipe
		if err := json.Unmarshal(raw, &w); err != nil {
			return model.Recipe{}, malformed("recipe", err.Error())
		}
		name, err := requiredString("recipe", "name", w.Name)
		if err != nil {
			return model.Recipe{}, err
		}
		ingredients, err := requiredString("recipe", "ingredients", w.Ingredients)
		if err != nil {
			return model.Recipe{}, err
		}
		calories, err := requiredCalories("recipe", w.Calories)
		if err != nil {
			return model.Recipe{}, err
		}
		return model.Recipe{Name: name, Ingredients: ingredients, Calories: calories}, nil
	},
	encode: func(r model.Recipe) (json.RawMessage, error) {
		return json.Marshal(wireRecipe{Name: &r.Name, Ingredients: &r.Ingredients, Calories: &r.Calories})
	},
}

var productCodec = codec[model.SavedProduct]{
	key: KeySavedProducts,
	decode: func(raw json.RawMessage) (model.SavedProduct, error) {
		var w wireProduct
		if err := json.Unmarshal(raw, &w); err != nil {
			return model.SavedProduct{}, malformed("saved product", err.Error())
		}
		name, err := requiredString("saved product", "name", w.Name)
		if err != nil {
			return model.SavedProduct{}, err
		}
		calories, err := requiredCalories("saved product", w.Calories)
		if err != nil {
			return model.SavedProduct{}, err
		}
		return model.SavedProduct{Name: name, Calories: calories}, nil
	},
	encode: func(p model.SavedProduct) (json.RawMessage, error) {
		return json.Marshal(wireProduct{Name: &p.Name, Calories: &p.Calories})
	},
}

var goalCodec = codec[model.Goal]{
	key: KeyGoals,
	decode: func(raw json.RawMessage) (model.Goal, error) {
		var w wireGoal
		if err := json.Unmarshal(raw, &w); err != nil {
			return model.Goal{}, malformed("goal", err.Error())
		}
		name, err := requiredString("goal", "name", w.Name)
		if err != nil {
			return model.Goal{}, err
		}
		if w.Progress == nil {
			return model.Goal{}, malformed("goal", "missing progress")
		}
		return model.Goal{Name: name, Progress: *w.Progress}, nil
	},
	encode: func(g model.Goal) (json.RawMessage, error) {
		return json.Marshal(wireGoal{Name: &g.Name, Progress: &g.Progress})
	},
}

func decodeEntry(raw json.RawMessage, loc *time.Location) (model.DiaryEntry, error) {
	var w wireEntry
	if err := json.Unmarshal(raw, &w); err != nil {
		return model.DiaryEntry{}, malformed("diary entry", err.Error())
	}

	e := model.DiaryEntry{ID: w.ID, Kind: model.KindProduct}
	var err error
	if w.Type == string(model.KindRecipe) {
		e.Kind = model.KindRecipe
		if e.Name, err = requiredString("diary entry", "name", w.Name); err != nil {
			return model.DiaryEntry{}, err
		}
		if e.Ingredients, err = requiredString("diary entry", "ingredients", w.Ingredients); err != nil {
			return model.DiaryEntry{}, err
		}
	} else {
		if e.Name, err = requiredString("diary entry", "productName", w.ProductName); err != nil {
			return model.DiaryEntry{}, err
		}
	}
	if e.Calories, err = requiredCalories("diary entry", w.Calories); err != nil {
		return model.DiaryEntry{}, err
	}
	if w.Time == nil {
		return model.DiaryEntry{}, malformed("diary entry", "missing time")
	}
	if e.Time, err = time.ParseInLocation(TimeLayout, *w.Time, loc); err != nil {
		return model.DiaryEntry{}, malformed("diary entry", fmt.Sprintf("time %q not in dd.MM.yyyy HH:mm", *w.Time))
	}
	return e, nil
}

func encodeEntry(e model.DiaryEntry) (json.RawMessage, error) {
	stamp := e.Time.Format(TimeLayout)
	w := wireEntry{Calories: &e.Calories, Time: &stamp, ID: e.ID}
	if e.Kind == model.KindRecipe {
		w.Type = string(model.KindRecipe)
		w.Name = &e.Name
		w.Ingredients = &e.Ingredients
	} else {
		w.ProductName = &e.Name
	}
	return json.Marshal(w)
}

func requiredString(what, field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", malformed(what, "missing "+field)
	}
	return *v, nil
}

func requiredCalories(what string, v *int) (int, error) {
	if v == nil {
		return 0, malformed(what, "missing calories")
	}
	if *v < 0 {
		return 0, malformed(what, "negative calories")
	}
	return *v, nil
}

func malformed(what, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrParse, what, detail)
}
