package ledger

import (
	"context"
	"fmt"

	"github.com/saadjs/fooddiary/internal/model"
	"github.com/saadjs/fooddiary/internal/store"
)

type RecipeInput struct {
	Name        string
	Ingredients string
	Calories    string
}

// AddRecipe stores the recipe and logs it into the diary in one transaction.
func (l *Ledger) AddRecipe(ctx context.Context, in RecipeInput) (model.Recipe, error) {
	entry, err := l.newEntry(EntryInput{
		Kind:        model.KindRecipe,
		Name:        in.Name,
		Calories:    in.Calories,
		Ingredients: in.Ingredients,
	})
	if err != nil {
		return model.Recipe{}, err
	}
	recipe := model.Recipe{Name: entry.Name, Ingredients: entry.Ingredients, Calories: entry.Calories}

	l.mu.Lock()
	defer l.mu.Unlock()

	err = l.store.Atomic(ctx, func(ctx context.Context, tx store.Store) error {
		col, err := load(ctx, l, tx, recipeCodec)
		if err != nil {
			return err
		}
		raw, err := recipeCodec.encode(recipe)
		if err != nil {
			return err
		}
		if err := save(ctx, tx, KeyRecipes, append(col.all(), raw)); err != nil {
			return err
		}
		return l.prependEntry(ctx, tx, entry)
	})
	if err != nil {
		return model.Recipe{}, storageError("add recipe", err)
	}
	l.log.Debug(ctx, "recipe added", "name", recipe.Name, "calories", recipe.Calories)
	return recipe, nil
}

// ListRecipes returns recipes in creation order.
func (l *Ledger) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	col, err := load(ctx, l, l.store, recipeCodec)
	if err != nil {
		return nil, err
	}
	return col.items(), nil
}

// LogRecipe copies the first stored recipe named name (case-insensitive)
// into the diary as a recipe entry. The recipe list is left unchanged.
func (l *Ledger) LogRecipe(ctx context.Context, name string) (model.DiaryEntry, error) {
	name, err := requireText("name", name)
	if err != nil {
		return model.DiaryEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var entry model.DiaryEntry
	err = l.store.Atomic(ctx, func(ctx context.Context, tx store.Store) error {
		col, err := load(ctx, l, tx, recipeCodec)
		if err != nil {
			return err
		}
		for _, r := range col.items() {
			if sameName(r.Name, name) {
				entry = l.stamp(model.DiaryEntry{Kind: model.KindRecipe, Name: r.Name, Calories: r.Calories, Ingredients: r.Ingredients})
				return l.prependEntry(ctx, tx, entry)
			}
		}
		return fmt.Errorf("recipe %q: %w", name, ErrNotFound)
	})
	if err != nil {
		return model.DiaryEntry{}, storageError("log recipe", err)
	}
	l.log.Debug(ctx, "recipe logged", "name", entry.Name, "calories", entry.Calories)
	return entry, nil
}

type SavedProductInput struct {
	Name     string
	Calories string
}

// AddSavedProduct appends a quick-add template. The diary is not touched.
func (l *Ledger) AddSavedProduct(ctx context.Context, in SavedProductInput) (model.SavedProduct, error) {
	name, err := requireText("name", in.Name)
	if err != nil {
		return model.SavedProduct{}, err
	}
	calories, err := ParseCalories(in.Calories)
	if err != nil {
		return model.SavedProduct{}, err
	}
	product := model.SavedProduct{Name: name, Calories: calories}

	l.mu.Lock()
	defer l.mu.Unlock()

	err = l.store.Atomic(ctx, func(ctx context.Context, tx store.Store) error {
		col, err := load(ctx, l, tx, productCodec)
		if err != nil {
			return err
		}
		raw, err := productCodec.encode(product)
		if err != nil {
			return err
		}
		return save(ctx, tx, KeySavedProducts, append(col.all(), raw))
	})
	if err != nil {
		return model.SavedProduct{}, storageError("add saved product", err)
	}
	return product, nil
}

func (l *Ledger) ListSavedProducts(ctx context.Context) ([]model.SavedProduct, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	col, err := load(ctx, l, l.store, productCodec)
	if err != nil {
		return nil, err
	}
	return col.items(), nil
}

// LogSavedProduct copies the first saved product named name (case-insensitive)
// into the diary as a product entry.
func (l *Ledger) LogSavedProduct(ctx context.Context, name string) (model.DiaryEntry, error) {
	name, err := requireText("name", name)
	if err != nil {
		return model.DiaryEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var entry model.DiaryEntry
	err = l.store.Atomic(ctx, func(ctx context.Context, tx store.Store) error {
		col, err := load(ctx, l, tx, productCodec)
		if err != nil {
			return err
		}
		for _, p := range col.items() {
			if sameName(p.Name, name) {
				entry = l.stamp(model.DiaryEntry{Kind: model.KindProduct, Name: p.Name, Calories: p.Calories})
				return l.prependEntry(ctx, tx, entry)
			}
		}
		return fmt.Errorf("saved product %q: %w", name, ErrNotFound)
	})
	if err != nil {
		return model.DiaryEntry{}, storageError("log saved product", err)
	}
	l.log.Debug(ctx, "saved product logged", "name", entry.Name, "calories", entry.Calories)
	return entry, nil
}

// ListGoals returns the stored named goals. The ledger never creates goals
// itself; they arrive through Import.
func (l *Ledger) ListGoals(ctx context.Context) ([]model.Goal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	col, err := load(ctx, l, l.store, goalCodec)
	if err != nil {
		return nil, err
	}
	return col.items(), nil
}
