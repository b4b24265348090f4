package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/zuri-studios/zuri-api/models"
	"github.com/zuri-studios/zuri-api/services"
)

type MenuItemControllerTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
}

func (suite *MenuItemControllerTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T(), &models.MenuItem{})

	description := "Smoky party-style jollof with fried plantain"
	suite.Require().NoError(suite.db.Create(&[]models.MenuItem{
		{Name: "Jollof Rice", Description: &description, Category: "mains", Price: 3500, Available: true},
		{Name: "Suya Platter", Category: "grills", Price: 5000, Available: false},
		{Name: "Chapman", Category: "drinks", Price: 1200, Available: true},
	}).Error)

	services.InitMenuStore()

	suite.router = gin.New()
	suite.router.GET("/api/v1/menu-items", ListMenuItems)
	suite.router.GET("/api/v1/admin/menu-items", ListAllMenuItems)
	suite.router.POST("/api/v1/admin/menu-items", CreateMenuItem)
	suite.router.PUT("/api/v1/admin/menu-items/:id", UpdateMenuItem)
	suite.router.DELETE("/api/v1/admin/menu-items/:id", DeleteMenuItem)
}

func (suite *MenuItemControllerTestSuite) menuNames(w *httptest.ResponseRecorder) []string {
	var response struct {
		Data []models.MenuItem `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	names := make([]string, 0, len(response.Data))
	for _, item := range response.Data {
		names = append(names, item.Name)
	}
	return names
}

func (suite *MenuItemControllerTestSuite) TestListMenuItems_HidesUnavailable() {
	w := performJSON(suite.router, http.MethodGet, "/api/v1/menu-items", nil, nil)
	suite.Equal(http.StatusOK, w.Code)

	names := suite.menuNames(w)
	suite.Contains(names, "Jollof Rice")
	suite.Contains(names, "Chapman")
	suite.NotContains(names, "Suya Platter")
}

func (suite *MenuItemControllerTestSuite) TestListAllMenuItems_IncludesUnavailable() {
	w := performJSON(suite.router, http.MethodGet, "/api/v1/admin/menu-items", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(suite.menuNames(w), "Suya Platter")
}

func (suite *MenuItemControllerTestSuite) TestCreateMenuItem() {
	w := performJSON(suite.router, http.MethodPost, "/api/v1/admin/menu-items", map[string]interface{}{
		"name":        "Zobo",
		"category":    "drinks",
		"price":       1000,
		"ingredients": []string{"hibiscus", "ginger", "pineapple"},
	}, nil)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	var saved models.MenuItem
	suite.Require().NoError(suite.db.Where("name = ?", "Zobo").First(&saved).Error)
	suite.True(saved.Available, "New items go on sale unless the request says otherwise")
	suite.Equal([]string{"hibiscus", "ginger", "pineapple"}, saved.Ingredients)

	// The storefront sees it without a refetch
	public := performJSON(suite.router, http.MethodGet, "/api/v1/menu-items", nil, nil)
	suite.Contains(suite.menuNames(public), "Zobo")
}

func (suite *MenuItemControllerTestSuite) TestCreateMenuItem_Validation() {
	w := performJSON(suite.router, http.MethodPost, "/api/v1/admin/menu-items", map[string]interface{}{
		"name":     "Free Lunch",
		"category": "mains",
		"price":    0,
	}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", errorCode(suite.T(), w))
}

func (suite *MenuItemControllerTestSuite) TestUpdateMenuItem() {
	w := performJSON(suite.router, http.MethodPut, "/api/v1/admin/menu-items/2",
		map[string]interface{}{"available": true, "price": 5500}, nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	var saved models.MenuItem
	suite.Require().NoError(suite.db.First(&saved, 2).Error)
	suite.True(saved.Available)
	suite.Equal(5500.0, saved.Price)

	public := performJSON(suite.router, http.MethodGet, "/api/v1/menu-items", nil, nil)
	suite.Contains(suite.menuNames(public), "Suya Platter")
}

func (suite *MenuItemControllerTestSuite) TestUpdateMenuItem_EmptyBody() {
	w := performJSON(suite.router, http.MethodPut, "/api/v1/admin/menu-items/1", map[string]interface{}{}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", errorCode(suite.T(), w))
}

func (suite *MenuItemControllerTestSuite) TestUpdateMenuItem_BadID() {
	w := performJSON(suite.router, http.MethodPut, "/api/v1/admin/menu-items/abc",
		map[string]interface{}{"price": 100}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_REQUEST", errorCode(suite.T(), w))
}

func (suite *MenuItemControllerTestSuite) TestDeleteMenuItem() {
	w := performJSON(suite.router, http.MethodDelete, "/api/v1/admin/menu-items/3", nil, nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	public := performJSON(suite.router, http.MethodGet, "/api/v1/menu-items", nil, nil)
	suite.NotContains(suite.menuNames(public), "Chapman")

	var count int64
	suite.db.Model(&models.MenuItem{}).Count(&count)
	suite.Equal(int64(2), count)
}

func TestMenuItemControllerTestSuite(t *testing.T) {
	suite.Run(t, new(MenuItemControllerTestSuite))
}
