package services

import (
	"burnshop_server/database"
	"burnshop_server/lib"
	"burnshop_server/structs"
	"burnshop_server/structs/tables"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productNames(products []tables.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

func TestCreateCategoryUnknownParent(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()

	_, err := f.sm.CatalogService.CreateCategory(f.ctx, &structs.CategoryRequest{Name: "Mice", ParentID: &missing})
	assert.ErrorIs(t, err, lib.ErrReference)
}

func TestCategoryNameMustNotBeBlank(t *testing.T) {
	f := newFixture(t)

	_, err := f.sm.CatalogService.CreateCategory(f.ctx, &structs.CategoryRequest{Name: "   "})
	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Errors[0].Field)

	category := f.category(t, "Mice", nil)
	_, err = f.sm.CatalogService.UpdateCategory(f.ctx, category.ID, &structs.CategoryRequest{Name: "\t"})
	assert.ErrorIs(t, err, lib.ErrValidation)

	categories, err := f.sm.CatalogService.ListCategories(f.ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Mice", categories[0].Name)
}

func TestUpdateCategoryRejectsCycle(t *testing.T) {
	f := newFixture(t)
	root := f.category(t, "Peripherals", nil)
	child := f.category(t, "Mice", &root.ID)
	grandchild := f.category(t, "Wireless mice", &child.ID)

	_, err := f.sm.CatalogService.UpdateCategory(f.ctx, root.ID, &structs.CategoryRequest{Name: "Peripherals", ParentID: &grandchild.ID})
	require.ErrorIs(t, err, lib.ErrValidation)

	_, err = f.sm.CatalogService.UpdateCategory(f.ctx, root.ID, &structs.CategoryRequest{Name: "Peripherals", ParentID: &root.ID})
	require.ErrorIs(t, err, lib.ErrValidation)

	other := f.category(t, "Audio", nil)
	moved, err := f.sm.CatalogService.UpdateCategory(f.ctx, grandchild.ID, &structs.CategoryRequest{Name: "Wireless mice", ParentID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, *moved.ParentID)
}

func TestDeleteCategoryCascadesToProducts(t *testing.T) {
	f := newFixture(t)
	headphones := f.category(t, "Headphones", nil)
	child := f.category(t, "Earbuds", &headphones.ID)
	mice := f.category(t, "Mice", nil)
	f.product(t, headphones.ID, "Cloud II", "99.99")
	f.product(t, headphones.ID, "Arctis 7", "149.00")
	f.product(t, mice.ID, "G305", "39.99")

	removed, err := f.sm.CatalogService.DeleteCategory(f.ctx, headphones.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	remaining, err := database.Query[tables.Product](f.db).All(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"G305"}, productNames(remaining))

	orphan, err := f.sm.CatalogService.GetCategory(f.ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.ParentID)

	_, err = f.sm.CatalogService.DeleteCategory(f.ctx, headphones.ID)
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestCategoryCounts(t *testing.T) {
	f := newFixture(t)
	headphones := f.category(t, "Headphones", nil)
	f.category(t, "Monitors", nil)
	f.product(t, headphones.ID, "Cloud II", "99.99")
	f.product(t, headphones.ID, "Arctis 7", "149.00")

	counts, err := f.sm.CatalogService.CategoryCounts(f.ctx)
	require.NoError(t, err)

	byName := map[string]int{}
	for _, c := range counts {
		byName[c.Name] = c.ProductCount
	}
	assert.Equal(t, map[string]int{"Headphones": 2, "Monitors": 0}, byName)
}

func TestCreateProductValidation(t *testing.T) {
	f := newFixture(t)
	category := f.category(t, "Keyboards", nil)
	discount := decimal.RequireFromString("60")

	cases := []struct {
		name  string
		req   structs.ProductRequest
		field string
	}{
		{"blank name", structs.ProductRequest{Name: "   ", Price: decimal.RequireFromString("1"), CategoryID: category.ID}, "name"},
		{"negative price", structs.ProductRequest{Name: "K", Price: decimal.RequireFromString("-1"), CategoryID: category.ID}, "price"},
		{"three decimals", structs.ProductRequest{Name: "K", Price: decimal.RequireFromString("1.005"), CategoryID: category.ID}, "price"},
		{"discount above price", structs.ProductRequest{Name: "K", Price: decimal.RequireFromString("50"), DiscountPrice: &discount, CategoryID: category.ID}, "discount_price"},
		{"negative stock", structs.ProductRequest{Name: "K", Price: decimal.RequireFromString("50"), Stock: -1, CategoryID: category.ID}, "stock"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.sm.CatalogService.CreateProduct(f.ctx, &tc.req)
			var ve *lib.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Errors[0].Field)
		})
	}

	_, err := f.sm.CatalogService.CreateProduct(f.ctx, &structs.ProductRequest{
		Name: "K", Price: decimal.RequireFromString("50"), CategoryID: uuid.New(),
	})
	assert.ErrorIs(t, err, lib.ErrReference)
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	category := f.category(t, "Keyboards", nil)
	product := f.product(t, category.ID, "K70", "129.99", withDiscount("99.99"))

	updated, err := f.sm.CatalogService.UpdateProduct(f.ctx, product.ID, &structs.ProductRequest{
		Name:       "K70 RGB",
		Price:      decimal.RequireFromString("139.99"),
		Brand:      "Corsair",
		Stock:      3,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.False(t, updated.DiscountPrice.Valid)

	fetched, err := f.sm.CatalogService.GetProduct(f.ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "K70 RGB", fetched.Name)
	assert.Equal(t, "Corsair", fetched.Brand)
	requireDecimal(t, "139.99", fetched.EffectivePrice())
	require.NotNil(t, fetched.Category)
	assert.Equal(t, "Keyboards", fetched.Category.Name)

	_, err = f.sm.CatalogService.UpdateProduct(f.ctx, uuid.New(), &structs.ProductRequest{
		Name: "X", Price: decimal.RequireFromString("1"), CategoryID: category.ID,
	})
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestListProductsFilters(t *testing.T) {
	f := newFixture(t)
	audio := f.category(t, "Headphones", nil)
	mice := f.category(t, "Mice", nil)
	f.product(t, audio.ID, "Cloud II", "99.99", withBrand("HyperX"))
	f.product(t, audio.ID, "Arctis 7", "149.00", withBrand("SteelSeries"), withDescription("wireless headset"))
	f.product(t, mice.ID, "Viper", "49.99", withBrand("Razer"), withDescription("Wireless gaming mouse"))
	f.product(t, mice.ID, "G305", "39.99", withBrand("Logitech"))

	t.Run("category", func(t *testing.T) {
		res, err := f.sm.CatalogService.ListProducts(f.ctx, &ProductListOptions{CategoryID: &audio.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"Arctis 7", "Cloud II"}, productNames(res.Products))
		assert.Equal(t, 2, res.Pagination.Total)
	})

	t.Run("brand is case insensitive", func(t *testing.T) {
		res, err := f.sm.CatalogService.ListProducts(f.ctx, &ProductListOptions{Brand: "razer"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Viper"}, productNames(res.Products))
	})

	t.Run("query unions name brand and description", func(t *testing.T) {
		res, err := f.sm.CatalogService.ListProducts(f.ctx, &ProductListOptions{Query: "WIRELESS"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Arctis 7", "Viper"}, productNames(res.Products))

		res, err = f.sm.CatalogService.ListProducts(f.ctx, &ProductListOptions{Query: "logi"})
		require.NoError(t, err)
		assert.Equal(t, []string{"G305"}, productNames(res.Products))
	})

	t.Run("sort by price descending", func(t *testing.T) {
		res, err := f.sm.CatalogService.ListProducts(f.ctx, &ProductListOptions{SortBy: "price", SortDirection: "desc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Arctis 7", "Cloud II", "Viper", "G305"}, productNames(res.Products))
	})

	t.Run("pagination", func(t *testing.T) {
		res, err := f.sm.CatalogService.ListProducts(f.ctx, &ProductListOptions{Page: 2, PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, []string{"Viper"}, productNames(res.Products))
		assert.Equal(t, 2, res.Pagination.TotalPages)
	})

	t.Run("unknown sort falls back to name", func(t *testing.T) {
		res, err := f.sm.CatalogService.ListProducts(f.ctx, &ProductListOptions{SortBy: "stock; DROP TABLE products"})
		require.NoError(t, err)
		assert.Equal(t, "name", res.Filters.SortBy)
		assert.Len(t, res.Products, 4)
	})
}

func TestSearchMatchesWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	category := f.category(t, "Accessories", nil)
	f.product(t, category.ID, "Mousepad 100% cotton", "9.99")
	f.product(t, category.ID, "Mousepad 100 cotton", "9.99")
	f.product(t, category.ID, "Cable_tie", "1.99")
	f.product(t, category.ID, "Cablextie", "1.99")

	res, err := f.sm.CatalogService.SearchProducts(f.ctx, "100%", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mousepad 100% cotton"}, productNames(res.Products))

	res, err = f.sm.CatalogService.SearchProducts(f.ctx, "e_t", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cable_tie"}, productNames(res.Products))
}

func TestSearchFoldsNonASCIICase(t *testing.T) {
	f := newFixture(t)
	category := f.category(t, "Наушники", nil)
	f.product(t, category.ID, "Наушники Sony", "99.00", withBrand("Сони"))
	f.product(t, category.ID, "Колонка JBL", "49.00", withBrand("JBL"), withDescription("Беспроводная КОЛОНКА"))

	res, err := f.sm.CatalogService.SearchProducts(f.ctx, "наушники", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Наушники Sony"}, productNames(res.Products))

	res, err = f.sm.CatalogService.SearchProducts(f.ctx, "беспроводная", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"Колонка JBL"}, productNames(res.Products))

	listed, err := f.sm.CatalogService.ListProducts(f.ctx, &ProductListOptions{Brand: "СОНИ"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Наушники Sony"}, productNames(listed.Products))
}

func TestSearchBlankTermReturnsNothing(t *testing.T) {
	f := newFixture(t)
	category := f.category(t, "Accessories", nil)
	f.product(t, category.ID, "Mousepad", "9.99")

	res, err := f.sm.CatalogService.SearchProducts(f.ctx, "   ", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, res.Products)
	assert.Equal(t, 0, res.Pagination.Total)
}
