package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/Kariqs/mobistore-api/services"
	"github.com/Kariqs/mobistore-api/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ProductController struct {
	catalog        *services.CatalogService
	filters        *services.FilterService
	maxUploadBytes int64
}

func NewProductController(catalog *services.CatalogService, filters *services.FilterService, maxUploadBytes int64) *ProductController {
	return &ProductController{catalog: catalog, filters: filters, maxUploadBytes: maxUploadBytes}
}

func (c *ProductController) FilterOptions(ctx *gin.Context) {
	opts, err := c.filters.FilterOptions(ctx.Request.Context())
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, opts)
}

// Search accepts repeated or comma-separated brand, ram, rom, network and
// processor parameters plus min_price, max_price and min_battery.
func (c *ProductController) Search(ctx *gin.Context) {
	filters, err := parseSearchFilters(ctx)
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	products, err := c.filters.Search(ctx.Request.Context(), filters)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, products)
}

func parseSearchFilters(ctx *gin.Context) (models.SearchFilters, error) {
	var f models.SearchFilters
	var err error

	f.Brands = queryList(ctx, "brand")
	f.Networks = queryList(ctx, "network")
	f.Processors = queryList(ctx, "processor")
	if f.RAM, err = queryInts(ctx, "ram"); err != nil {
		return f, err
	}
	if f.ROM, err = queryInts(ctx, "rom"); err != nil {
		return f, err
	}

	if f.MinPrice, err = queryDecimal(ctx, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = queryDecimal(ctx, "max_price"); err != nil {
		return f, err
	}
	if v := ctx.Query("min_battery"); v != "" {
		battery, err := strconv.Atoi(v)
		if err != nil {
			return f, errors.New("invalid min_battery")
		}
		f.MinBattery = &battery
	}
	return f, nil
}

func queryInts(ctx *gin.Context, key string) ([]int, error) {
	values := queryList(ctx, key)
	out := make([]int, 0, len(values))
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("invalid " + key)
		}
		out = append(out, n)
	}
	return out, nil
}

func queryDecimal(ctx *gin.Context, key string) (*decimal.Decimal, error) {
	v := ctx.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, errors.New("invalid " + key)
	}
	return &d, nil
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	productID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	product, err := c.catalog.GetProduct(ctx.Request.Context(), productID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

// CreateProduct takes a multipart form with the product fields, repeated
// colors values and an optional image file.
func (c *ProductController) CreateProduct(ctx *gin.Context) {
	seller, ok := currentUser(ctx)
	if !ok {
		return
	}
	c.limitBody(ctx)

	var input models.ProductInput
	if err := ctx.ShouldBind(&input); err != nil {
		badRequest(ctx, msgInvalidInput)
		return
	}

	price, err := decimal.NewFromString(ctx.PostForm("price"))
	if err != nil {
		badRequest(ctx, "Invalid price")
		return
	}
	input.Price = price

	if colors := ctx.PostFormArray("colors"); len(colors) > 0 {
		raw, err := json.Marshal(colors)
		if err != nil {
			badRequest(ctx, "Invalid colors")
			return
		}
		input.Colors = datatypes.JSON(raw)
	}

	image, closeImage, err := formImage(ctx)
	if err != nil {
		badRequest(ctx, "Invalid image")
		return
	}
	defer closeImage()

	product, err := c.catalog.CreateProduct(ctx.Request.Context(), seller.UserID, input, image)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, product)
}

func (c *ProductController) SellerInventory(ctx *gin.Context) {
	seller, ok := currentUser(ctx)
	if !ok {
		return
	}

	products, err := c.catalog.SellerInventory(ctx.Request.Context(), seller.UserID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, products)
}

// UpdateProduct changes only the form fields that are present.
func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	seller, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := idParam(ctx, "id")
	if !ok {
		return
	}
	c.limitBody(ctx)

	var in models.ProductUpdate
	if v, ok := ctx.GetPostForm("brand"); ok && v != "" {
		in.Brand = &v
	}
	if v, ok := ctx.GetPostForm("model_name"); ok && v != "" {
		in.ModelName = &v
	}
	if v, ok := ctx.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := ctx.GetPostForm("price"); ok && v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			badRequest(ctx, "Invalid price")
			return
		}
		in.Price = &price
	}
	if v, ok := ctx.GetPostForm("stock"); ok && v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			badRequest(ctx, "Invalid stock")
			return
		}
		in.Stock = &stock
	}
	if v, ok := ctx.GetPostForm("is_active"); ok && v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(ctx, "Invalid is_active")
			return
		}
		in.IsActive = &active
	}

	image, closeImage, err := formImage(ctx)
	if err != nil {
		badRequest(ctx, "Invalid image")
		return
	}
	defer closeImage()

	product, err := c.catalog.UpdateProduct(ctx.Request.Context(), seller.UserID, productID, in, image)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func (c *ProductController) SoftDeleteProduct(ctx *gin.Context) {
	seller, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.catalog.SoftDeleteProduct(ctx.Request.Context(), seller.UserID, productID); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deactivated successfully"})
}

func (c *ProductController) HardDeleteProduct(ctx *gin.Context) {
	seller, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := idParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.catalog.HardDeleteProduct(ctx.Request.Context(), seller.UserID, productID); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product and image deleted permanently"})
}

func (c *ProductController) limitBody(ctx *gin.Context) {
	if c.maxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes)
	}
}

// formImage opens the "image" file of a multipart form. A missing file is not
// an error.
func formImage(ctx *gin.Context) (*storage.Upload, func(), error) {
	noop := func() {}

	header, err := ctx.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, noop, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &storage.Upload{Filename: header.Filename, Body: f, ContentType: contentType}, func() {
		if err := f.Close(); err != nil {
			zap.S().Debugw("failed to close upload", "error", err)
		}
	}, nil
}
