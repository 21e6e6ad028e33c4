package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sasank-in/skin-disease/internal/auth"
	"github.com/sasank-in/skin-disease/internal/middleware"
	"github.com/sasank-in/skin-disease/internal/models"
	"github.com/sasank-in/skin-disease/internal/util"
)

const invalidCredentials = "Invalid email or password."

// AuthHandler serves the login, signup and logout forms.
type AuthHandler struct {
	DB           *gorm.DB
	Hasher       *auth.Hasher
	Tokens       *auth.Tokens
	CookieSecure bool
}

func NewAuthHandler(db *gorm.DB, hasher *auth.Hasher, tokens *auth.Tokens, cookieSecure bool) *AuthHandler {
	return &AuthHandler{DB: db, Hasher: hasher, Tokens: tokens, CookieSecure: cookieSecure}
}

// ---------- cookie ----------

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.CookieSecure,
	})
}

func (h *AuthHandler) clearAuthCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.CookieSecure,
	})
}

// safeNext only follows local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return ""
	}
	return next
}

func landingFor(u *models.User, next string) string {
	if n := safeNext(next); n != "" {
		return n
	}
	if u.IsAdmin() {
		return "/admin"
	}
	return "/remedy"
}

// ---------- login ----------

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if u := middleware.CurrentUser(c); u != nil {
		c.Redirect(http.StatusSeeOther, landingFor(u, c.Query("next")))
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{"title": "Log in", "next": safeNext(c.Query("next"))})
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := util.NormalizeEmail(c.PostForm("email"))
	password := c.PostForm("password")
	next := safeNext(c.PostForm("next"))

	fail := func(status int, msg string) {
		render(c, status, "login.html", gin.H{"title": "Log in", "error": msg, "email": email, "next": next})
	}

	if email == "" || password == "" {
		fail(http.StatusBadRequest, "Email and password are required.")
		return
	}

	var user models.User
	if err := middleware.DB(c, h.DB).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(http.StatusUnauthorized, invalidCredentials)
			return
		}
		log.Printf("[%s] login lookup: %v", middleware.RequestID(c), err)
		fail(http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if !h.Hasher.Verify(password, user.HashedPassword) {
		fail(http.StatusUnauthorized, invalidCredentials)
		return
	}

	if err := h.startSession(c, &user); err != nil {
		log.Printf("[%s] issue token: %v", middleware.RequestID(c), err)
		fail(http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	c.Redirect(http.StatusSeeOther, landingFor(&user, next))
}

func (h *AuthHandler) startSession(c *gin.Context, u *models.User) error {
	token, err := h.Tokens.Issue(u.Email, 0)
	if err != nil {
		return err
	}
	h.setAuthCookie(c, token)
	return nil
}

// ---------- signup ----------

type signupForm struct {
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
	Phone           string `form:"phone"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (f *signupForm) validate() error {
	if err := util.ValidateEmail(f.Email); err != nil {
		return err
	}
	if err := util.ValidatePassword(f.Password); err != nil {
		return err
	}
	if f.ConfirmPassword != "" && f.ConfirmPassword != f.Password {
		return errors.New("passwords do not match")
	}
	if err := util.ValidateName("first name", f.FirstName); err != nil {
		return err
	}
	if err := util.ValidateName("last name", f.LastName); err != nil {
		return err
	}
	return util.ValidatePhone(f.Phone)
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, "signup.html", gin.H{"title": "Sign up"})
}

// Signup creates a regular user and logs them in.
func (h *AuthHandler) Signup(c *gin.Context) {
	var form signupForm
	bindErr := c.ShouldBind(&form)
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Phone = strings.TrimSpace(form.Phone)
	form.Email = util.NormalizeEmail(form.Email)

	fail := func(status int, msg string) {
		render(c, status, "signup.html", gin.H{"title": "Sign up", "error": msg, "form": form})
	}

	if bindErr != nil {
		fail(http.StatusBadRequest, "Invalid form submission.")
		return
	}
	if err := form.validate(); err != nil {
		fail(http.StatusBadRequest, capitalize(err.Error())+".")
		return
	}

	db := middleware.DB(c, h.DB)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", form.Email).Count(&count).Error; err != nil {
		log.Printf("[%s] signup lookup: %v", middleware.RequestID(c), err)
		fail(http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	if count > 0 {
		fail(http.StatusBadRequest, "An account with this email already exists.")
		return
	}

	hash, err := h.Hasher.Hash(form.Password)
	if err != nil {
		log.Printf("[%s] hash password: %v", middleware.RequestID(c), err)
		fail(http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	user := models.User{
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Phone:          form.Phone,
		Email:          form.Email,
		HashedPassword: hash,
		Role:           models.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("[%s] create user: %v", middleware.RequestID(c), err)
		fail(http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}

	if err := h.startSession(c, &user); err != nil {
		log.Printf("[%s] issue token: %v", middleware.RequestID(c), err)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	c.Redirect(http.StatusSeeOther, "/remedy")
}

// ---------- logout ----------

func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearAuthCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
