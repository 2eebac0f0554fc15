package controller

import (
	"ctchen222/bucketlist/internal/api/middleware"
	"ctchen222/bucketlist/internal/api/models"
	"ctchen222/bucketlist/internal/api/response"
	"ctchen222/bucketlist/internal/api/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// BucketlistController handles the ownership-scoped bucketlist and item
// endpoints. All of its routes sit behind the auth middleware, so the
// verified user id is always present in the context.
type BucketlistController struct {
	bucketlistService service.BucketlistService
}

// NewBucketlistController creates a new BucketlistController.
func NewBucketlistController(bucketlistService service.BucketlistService) *BucketlistController {
	return &BucketlistController{
		bucketlistService: bucketlistService,
	}
}

// List handles GET /bucketlists/ with optional q, limit and page.
func (bc *BucketlistController) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access Denied. Log in Again.")
		return
	}

	var q models.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := bc.bucketlistService.List(c.Request.Context(), userID, q)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, "list_success", gin.H{
		"bucketlists": result.Bucketlists,
		"pagination":  result.Pagination,
	})
}

// Create handles POST /bucketlists/.
func (bc *BucketlistController) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access Denied. Log in Again.")
		return
	}

	var req models.CreateBucketlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	list, err := bc.bucketlistService.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, "create_success", gin.H{"bucketlist": list})
}

// Get handles GET /bucketlists/:id/.
func (bc *BucketlistController) Get(c *gin.Context) {
	userID, listID, ok := bc.scope(c)
	if !ok {
		return
	}

	list, err := bc.bucketlistService.Get(c.Request.Context(), userID, listID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, "get_single_success", gin.H{"bucketlist": list})
}

// Update handles PUT /bucketlists/:id/, renaming the list.
func (bc *BucketlistController) Update(c *gin.Context) {
	userID, listID, ok := bc.scope(c)
	if !ok {
		return
	}

	var req models.UpdateBucketlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	list, err := bc.bucketlistService.Rename(c.Request.Context(), userID, listID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, "update_single_success", gin.H{"bucketlist": list})
}

// Delete handles DELETE /bucketlists/:id/.
func (bc *BucketlistController) Delete(c *gin.Context) {
	userID, listID, ok := bc.scope(c)
	if !ok {
		return
	}

	if err := bc.bucketlistService.Delete(c.Request.Context(), userID, listID); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, "delete_single_success", nil)
}

// CreateItem handles POST /bucketlists/:id/items/.
func (bc *BucketlistController) CreateItem(c *gin.Context) {
	userID, listID, ok := bc.scope(c)
	if !ok {
		return
	}

	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := bc.bucketlistService.CreateItem(c.Request.Context(), userID, listID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, "create_item_success", gin.H{"item": item})
}

// UpdateItem handles PUT /bucketlists/:id/items/:item_id. Omitted
// fields keep their stored values; an explicit done=false is honored.
func (bc *BucketlistController) UpdateItem(c *gin.Context) {
	userID, listID, ok := bc.scope(c)
	if !ok {
		return
	}
	itemID, ok := bc.param(c, "item_id")
	if !ok {
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	item, err := bc.bucketlistService.UpdateItem(c.Request.Context(), userID, listID, itemID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, "update_item_success", gin.H{"item": item})
}

// DeleteItem handles DELETE /bucketlists/:id/items/:item_id.
func (bc *BucketlistController) DeleteItem(c *gin.Context) {
	userID, listID, ok := bc.scope(c)
	if !ok {
		return
	}
	itemID, ok := bc.param(c, "item_id")
	if !ok {
		return
	}

	if err := bc.bucketlistService.DeleteItem(c.Request.Context(), userID, listID, itemID); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, "delete_item_success", nil)
}

// scope resolves the authenticated user and the :id path parameter,
// writing the error response itself when either is missing.
func (bc *BucketlistController) scope(c *gin.Context) (userID, listID int64, ok bool) {
	userID, ok = middleware.CurrentUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Access Denied. Log in Again.")
		return 0, 0, false
	}
	listID, ok = bc.param(c, "id")
	if !ok {
		return 0, 0, false
	}
	return userID, listID, true
}

func (bc *BucketlistController) param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
