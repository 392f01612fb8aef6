// handlers.go - Wires HTTP routes to the blog services

package handlers // Declares the package name

import ( // Import required packages
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"go-blog-backend/apperrors"  // Failure taxonomy
	"go-blog-backend/media"      // Uploaded image type
	"go-blog-backend/middleware" // Identity and error rendering
	"go-blog-backend/repository" // Paging
	"go-blog-backend/service"    // Blog workflows

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Request validation engine
	"github.com/go-playground/validator/v10" // Struct tag validation
)

const (
	maxPageSize      = 100
	maxImageBytes    = 10 << 20
	defaultPostPage  = 6
	defaultUserPage  = 10
	defaultCommPage  = 10
	imageFormField   = "image"
	profileFormField = "profileImage"
)

// Handler holds the services behind the REST API.
type Handler struct {
	Users    *service.UserService
	Posts    *service.PostService
	Likes    *service.LikeService
	Comments *service.CommentService

	// UserRepo backs the self-or-admin check on profile routes.
	UserRepo repository.UserRepository
	// AuthRequired makes a bearer token mandatory on mutating routes.
	AuthRequired bool
}

// RegisterRoutes mounts every endpoint under /api on r. Identity must already
// be installed on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	jsonFieldNames.Do(useJSONFieldNames)

	api := r.Group("/api")

	needToken := middleware.RequireToken(h.AuthRequired)
	selfOrAdmin := middleware.SelfOrAdmin(h.UserRepo, h.AuthRequired)

	users := api.Group("/users")
	{
		users.POST("/register", h.Register) // Public: user registration
		users.POST("/login", h.Login)       // Public: user login
		users.GET("/all", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PATCH("/:id", selfOrAdmin, h.UpdateUser)
		users.DELETE("/:id", selfOrAdmin, h.DeleteUser)
	}

	posts := api.Group("/posts")
	{
		posts.POST("", needToken, h.CreatePost)
		posts.GET("", h.ListPosts)
		posts.GET("/my-blogs", h.ListMyPosts)
		posts.GET("/:postId", h.GetPost)
		posts.PATCH("/:postId", needToken, h.UpdatePost)
		posts.DELETE("/:postId", needToken, h.DeletePost)

		for _, path := range []string{"/:postId/like", "/:postId/likes"} {
			posts.POST(path, needToken, h.LikePost)
			posts.GET(path, h.GetLikeState)
			posts.DELETE(path, needToken, h.UnlikePost)
		}

		posts.POST("/:postId/comments", needToken, h.AddComment)
		posts.GET("/:postId/comments", h.ListComments)
	}
}

var jsonFieldNames sync.Once

// useJSONFieldNames makes validation errors report the json (or form) name of a
// field instead of the Go struct field name.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
}

// pathID parses a positive numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, apperrors.BadRequest(name + " must be a positive number")
	}
	return uint(n), nil
}

// requireCaller resolves the acting user and fails when there is none.
func requireCaller(c *gin.Context) (uint, error) {
	id, err := middleware.CallerID(c)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, apperrors.BadRequest("userId is required")
	}
	return *id, nil
}

// pageRequest reads page and size query parameters, clamping them to sane values.
func pageRequest(c *gin.Context, defaultSize int) (repository.PageRequest, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		return repository.PageRequest{}, apperrors.BadRequest("page must be a non-negative number")
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil || size <= 0 {
		return repository.PageRequest{}, apperrors.BadRequest("size must be a positive number")
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return repository.PageRequest{Page: page, Size: size}, nil
}

// formImage reads an optional uploaded file. A missing or empty part yields nil.
func formImage(c *gin.Context, field string) (*media.File, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.BadRequest("invalid " + field + " upload")
	}
	if fh.Size > maxImageBytes {
		return nil, apperrors.BadRequest(field + " is larger than 10MB")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &media.File{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}

// optionalForm returns a pointer to the form value, or nil when the field was not sent.
func optionalForm(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}
