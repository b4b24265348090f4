package acceptance

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/controllers"
	"github.com/zuri-studios/zuri-api/middleware"
	"github.com/zuri-studios/zuri-api/models"
	"github.com/zuri-studios/zuri-api/services"
	"github.com/zuri-studios/zuri-api/tests/testutil"
)

// FileUploadAcceptanceTestSuite walks the image upload journeys against a
// live test server: profile avatars and admin catalog uploads.
type FileUploadAcceptanceTestSuite struct {
	suite.Suite
	server  *httptest.Server
	db      *gorm.DB
	storage *services.MockStorageService
}

// SetupSuite runs once before all tests
func (suite *FileUploadAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	testutil.MustSetTestEnvironment(suite.T())
}

// SetupTest runs before each test
func (suite *FileUploadAcceptanceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(&models.Profile{})
	suite.NoError(err)
	config.SetDB(db)

	suite.NoError(db.Create(&models.Profile{
		UserID: "user-1", FullName: "Amara Obi", Email: "amara@example.com", Role: models.RoleCustomer,
	}).Error)
	suite.NoError(db.Create(&models.Profile{
		UserID: "staff-1", FullName: "Staff Member", Email: "staff@zuristudios.com", Role: models.RoleStaff,
	}).Error)

	suite.storage = services.NewMockStorageService()
	suite.storage.SetAsMockForTesting()
	services.InitImageService(suite.storage)
	services.InitProfileService(suite.storage, nil)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Authenticate(acceptanceVerifier))

	v1 := router.Group("/api/v1")
	{
		me := v1.Group("")
		me.Use(middleware.RequireSession())
		{
			me.GET("/users/me", controllers.GetMyProfile)
			me.POST("/users/me/avatar", controllers.UploadAvatar)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.Guard(models.RoleAdmin, models.RoleManager, models.RoleStaff))
		{
			admin.POST("/uploads", controllers.UploadCatalogImage)
		}
	}

	suite.server = httptest.NewServer(router)
}

// TearDownTest runs after each test
func (suite *FileUploadAcceptanceTestSuite) TearDownTest() {
	suite.server.Close()
	sqlDB, err := suite.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// upload performs a single-file multipart upload over HTTP
func (suite *FileUploadAcceptanceTestSuite) upload(path, field, filename string, content []byte, token string) *http.Response {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	suite.NoError(err)
	part.Write(content)
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, suite.server.URL+path, body)
	suite.NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	suite.NoError(err)
	return resp
}

// decode reads a JSON response body
func (suite *FileUploadAcceptanceTestSuite) decode(resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	var body map[string]interface{}
	err := json.NewDecoder(resp.Body).Decode(&body)
	suite.NoError(err)
	return body
}

// TestAvatarJourney uploads an avatar and sees it on the profile afterwards
func (suite *FileUploadAcceptanceTestSuite) TestAvatarJourney() {
	// Step 1: Upload a new avatar
	resp := suite.upload("/api/v1/users/me/avatar", "avatar", "portrait.png", []byte("avatar bytes"), "customer-token")
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	uploadBody := suite.decode(resp)
	assert.True(suite.T(), uploadBody["success"].(bool))
	assert.Equal(suite.T(), 1, suite.storage.UploadCount())

	// Step 2: The profile now carries the avatar URL
	req, err := http.NewRequest(http.MethodGet, suite.server.URL+"/api/v1/users/me", nil)
	suite.NoError(err)
	req.Header.Set("Authorization", "Bearer customer-token")
	meResp, err := http.DefaultClient.Do(req)
	suite.NoError(err)
	assert.Equal(suite.T(), http.StatusOK, meResp.StatusCode)

	meBody := suite.decode(meResp)
	profile := meBody["data"].(map[string]interface{})
	avatarURL := profile["avatar_url"].(string)
	assert.Contains(suite.T(), avatarURL, "profile-images/user-1/")
	assert.True(suite.T(), strings.HasSuffix(avatarURL, "portrait.png"))
}

// TestAvatarJourney_RejectedFileChangesNothing tests that a bad file leaves
// the profile untouched
func (suite *FileUploadAcceptanceTestSuite) TestAvatarJourney_RejectedFileChangesNothing() {
	resp := suite.upload("/api/v1/users/me/avatar", "avatar", "malware.exe", []byte("not an image"), "customer-token")
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)

	body := suite.decode(resp)
	errorData := body["error"].(map[string]interface{})
	assert.Equal(suite.T(), "INVALID_FILE_FORMAT", errorData["code"])

	assert.Equal(suite.T(), 0, suite.storage.UploadCount())

	var saved models.Profile
	err := suite.db.Where("user_id = ?", "user-1").First(&saved).Error
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), saved.AvatarURL)
}

// TestCatalogUploadJourney uploads a catalog image as staff and verifies
// the returned URL serves from storage
func (suite *FileUploadAcceptanceTestSuite) TestCatalogUploadJourney() {
	resp := suite.upload("/api/v1/admin/uploads", "image", "spring lookbook.webp", []byte("image bytes"), "staff-token")
	assert.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	body := suite.decode(resp)
	data := body["data"].(map[string]interface{})
	key := data["key"].(string)
	assert.True(suite.T(), strings.HasPrefix(key, "catalog/"))
	assert.True(suite.T(), strings.HasSuffix(key, "spring_lookbook.webp"))
	assert.True(suite.T(), suite.storage.FileExists(key))
	assert.Equal(suite.T(), suite.storage.PublicURL(key), data["url"])
}

// TestFileUploadAcceptanceSuite runs the test suite
func TestFileUploadAcceptanceSuite(t *testing.T) {
	suite.Run(t, new(FileUploadAcceptanceTestSuite))
}
