package session

import (
	"errors"
	"flyerboard/common"
	"flyerboard/domain"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	KeyUserName = "flyer-app-user-name"
	KeyUserRole = "flyer-app-user-role"
	KeyFontSize = "flyer-app-font-size"

	preferenceMaxAge = int(365 * 24 * time.Hour / time.Second)
)

var ErrInvalidFontSize = errors.New("invalid font size")

type FontSize string

const (
	FontSizeSmall   = FontSize("sm")
	FontSizeBase    = FontSize("base")
	FontSizeLarge   = FontSize("lg")
	DefaultFontSize = FontSizeBase
)

func (f FontSize) Valid() bool {
	return f == FontSizeSmall || f == FontSizeBase || f == FontSizeLarge
}

// Preferences are remembered per browser: the commenter's name and role and
// the comment font size.
type Preferences struct {
	UserName string          `json:"userName"`
	Role     domain.UserRole `json:"role"`
	FontSize FontSize        `json:"fontSize"`
}

type PreferencesUpdating struct {
	UserName *string          `json:"userName"`
	Role     *domain.UserRole `json:"role"`
	FontSize *FontSize        `json:"fontSize"`
}

// ReadPreferences ignores unknown roles and font sizes.
func ReadPreferences(c *gin.Context) Preferences {
	p := Preferences{FontSize: DefaultFontSize}
	if v, err := c.Cookie(KeyUserName); err == nil {
		p.UserName = v
	}
	if v, err := c.Cookie(KeyUserRole); err == nil && domain.UserRole(v).Valid() {
		p.Role = domain.UserRole(v)
	}
	if v, err := c.Cookie(KeyFontSize); err == nil && FontSize(v).Valid() {
		p.FontSize = FontSize(v)
	}
	return p
}

func RegisterPreferencesHandler(r gin.IRouter) {
	r.GET("/v1/preferences", GetPreferencesHandler)
	r.PUT("/v1/preferences", PutPreferencesHandler)
}

func GetPreferencesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ReadPreferences(c))
}

func PutPreferencesHandler(c *gin.Context) {
	updating := PreferencesUpdating{}
	if err := c.ShouldBindJSON(&updating); err != nil {
		panic(err)
	}
	if updating.Role != nil && !updating.Role.Valid() {
		panic(domain.ErrInvalidRole)
	}
	if updating.FontSize != nil && !updating.FontSize.Valid() {
		panic(&common.ErrBadParam{Cause: ErrInvalidFontSize})
	}

	p := ReadPreferences(c)
	if updating.UserName != nil {
		p.UserName = strings.TrimSpace(*updating.UserName)
		setPreference(c, KeyUserName, p.UserName)
	}
	if updating.Role != nil {
		p.Role = *updating.Role
		setPreference(c, KeyUserRole, string(p.Role))
	}
	if updating.FontSize != nil {
		p.FontSize = *updating.FontSize
		setPreference(c, KeyFontSize, string(p.FontSize))
	}
	c.JSON(http.StatusOK, p)
}

// gin query-escapes cookie values and Cookie() unescapes them.
func setPreference(c *gin.Context, key, value string) {
	c.SetCookie(key, value, preferenceMaxAge, "/", "", false, false)
}
