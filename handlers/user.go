// user.go - Handles user registration, login and profile management

package handlers // Declares the package name

import ( // Import required packages
	"net/http" // HTTP status codes

	"go-blog-backend/middleware" // Error rendering
	"go-blog-backend/service"    // User workflows

	"github.com/gin-gonic/gin" // Gin web framework
)

type RegisterInput struct { // Struct for registration input
	Name     string `json:"name" binding:"required"`           // Display name (required)
	Email    string `json:"email" binding:"required,email"`    // Email (required)
	Password string `json:"password" binding:"required,min=6"` // Password (required)
	Bio      string `json:"bio"`                               // Optional biography
}

type UpdateUserInput struct { // Struct for profile update form; blank values are rejected by the service
	Email string `form:"email" binding:"omitempty,email"` // Email (optional, must be well formed)
}

type LoginInput struct { // Struct for login input
	Email    string `json:"email" binding:"required"`    // Email (required)
	Password string `json:"password" binding:"required"` // Password (required)
}

// Register - POST /api/users/register
func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput                          // Declare input variable
	if err := c.ShouldBindJSON(&input); err != nil { // Parse JSON input
		middleware.AbortWithBindError(c, err)
		return
	}
	user, err := h.Users.Register(c.Request.Context(), service.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Bio:      input.Bio,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user) // Success response
}

// Login - POST /api/users/login, returns the profile with a bearer token
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput                             // Declare input variable
	if err := c.ShouldBindJSON(&input); err != nil { // Parse JSON input
		middleware.AbortWithBindError(c, err)
		return
	}
	user, err := h.Users.Login(c.Request.Context(), input.Email, input.Password) // Check credentials
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user) // Return profile and token
}

// ListUsers - GET /api/users/all?page=&size=
func (h *Handler) ListUsers(c *gin.Context) {
	page, err := pageRequest(c, defaultUserPage)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	users, err := h.Users.List(c.Request.Context(), page)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser - GET /api/users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	user, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser - PATCH /api/users/:id (multipart: name?, bio?, email?, profileImage?)
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	var input UpdateUserInput
	if err := c.ShouldBind(&input); err != nil { // Parses the form and checks the email format
		middleware.AbortWithBindError(c, err)
		return
	}
	image, err := formImage(c, profileFormField)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	user, err := h.Users.UpdateProfile(c.Request.Context(), id, service.ProfileUpdate{
		Name:  optionalForm(c, "name"),
		Bio:   optionalForm(c, "bio"),
		Email: optionalForm(c, "email"),
		Image: image,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser - DELETE /api/users/:id, removes the user and everything they authored
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
