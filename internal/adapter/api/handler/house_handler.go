package handler

import (
	"mime/multipart"
	"strconv"

	"github.com/labstack/echo/v4"

	"homerent/internal/usecase"
	"homerent/pkg/errors"
	"homerent/pkg/response"
	"homerent/pkg/utils"
)

type HouseHandler struct {
	houseUseCase *usecase.HouseUseCase
}

func NewHouseHandler(houseUseCase *usecase.HouseUseCase) *HouseHandler {
	return &HouseHandler{
		houseUseCase: houseUseCase,
	}
}

func (h *HouseHandler) ListHouses(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	houses, total, err := h.houseUseCase.ListHouses(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, houses, total, params.Page, params.PageSize)
}

func (h *HouseHandler) GetHouse(c echo.Context) error {
	house, err := h.houseUseCase.GetHouse(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, house)
}

func (h *HouseHandler) ListMyHouses(c echo.Context) error {
	uid := c.Get("uid").(string)

	houses, err := h.houseUseCase.ListMyHouses(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, houses)
}

func (h *HouseHandler) CreateHouse(c echo.Context) error {
	uid := c.Get("uid").(string)

	title := c.FormValue("title")
	location := c.FormValue("location")
	if title == "" || location == "" {
		return response.Error(c, errors.BadRequest("Title and location are required", nil))
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		return response.Error(c, errors.BadRequest("Price must be a non-negative number", nil))
	}
	forSale, _ := strconv.ParseBool(c.FormValue("for_sale"))

	mainImage, err := openImage(c, "main_image")
	if err != nil {
		return response.Error(c, err)
	}
	if mainImage != nil {
		defer mainImage.closer.Close()
	}

	subImages, closers, err := openImages(c, "sub_images")
	if err != nil {
		return response.Error(c, err)
	}
	for _, closer := range closers {
		defer closer.Close()
	}

	input := usecase.CreateHouseInput{
		Title:       title,
		Location:    location,
		Description: c.FormValue("description"),
		Price:       price,
		ForSale:     forSale,
		SubImages:   subImages,
	}
	if mainImage != nil {
		input.MainImage = mainImage.image
	}

	house, err := h.houseUseCase.CreateHouse(c.Request().Context(), uid, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, house)
}

func (h *HouseHandler) UpdateHouse(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		Title       *string  `json:"title"`
		Location    *string  `json:"location"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price" validate:"omitempty,gte=0"`
		ForSale     *bool    `json:"for_sale"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	house, err := h.houseUseCase.UpdateHouse(c.Request().Context(), uid, c.Param("id"), usecase.UpdateHouseInput{
		Title:       req.Title,
		Location:    req.Location,
		Description: req.Description,
		Price:       req.Price,
		ForSale:     req.ForSale,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, house)
}

func (h *HouseHandler) ReplaceImages(c echo.Context) error {
	uid := c.Get("uid").(string)

	mainImage, err := openImage(c, "main_image")
	if err != nil {
		return response.Error(c, err)
	}
	if mainImage != nil {
		defer mainImage.closer.Close()
	}

	subImages, closers, err := openImages(c, "sub_images")
	if err != nil {
		return response.Error(c, err)
	}
	for _, closer := range closers {
		defer closer.Close()
	}

	if mainImage == nil && len(subImages) == 0 {
		return response.Error(c, errors.BadRequest("At least one image is required", nil))
	}

	var main *usecase.HouseImage
	if mainImage != nil {
		main = mainImage.image
	}

	house, err := h.houseUseCase.ReplaceImages(c.Request().Context(), uid, c.Param("id"), main, subImages)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, house)
}

func (h *HouseHandler) DeleteHouse(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.houseUseCase.DeleteHouse(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}

type openedImage struct {
	image  *usecase.HouseImage
	closer multipart.File
}

func openImage(c echo.Context, field string) (*openedImage, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// Field absent is fine; the usecase decides whether it was required.
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.BadRequest("Failed to read uploaded file", err)
	}

	return &openedImage{
		image: &usecase.HouseImage{
			Reader:      file,
			ContentType: fileHeader.Header.Get("Content-Type"),
		},
		closer: file,
	}, nil
}

func openImages(c echo.Context, field string) ([]*usecase.HouseImage, []multipart.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, nil
	}

	var images []*usecase.HouseImage
	var closers []multipart.File
	for _, fileHeader := range form.File[field] {
		file, err := fileHeader.Open()
		if err != nil {
			for _, closer := range closers {
				closer.Close()
			}
			return nil, nil, errors.BadRequest("Failed to read uploaded file", err)
		}
		images = append(images, &usecase.HouseImage{
			Reader:      file,
			ContentType: fileHeader.Header.Get("Content-Type"),
		})
		closers = append(closers, file)
	}

	return images, closers, nil
}
