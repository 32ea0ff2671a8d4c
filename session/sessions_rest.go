package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func (g *Gate) RegisterSessionsHandler(r gin.IRouter) {
	group := r.Group("/v1/sessions")
	group.POST("", g.LoginHandler)
	group.DELETE("", g.LogoutHandler)
}

func (g *Gate) LoginHandler(c *gin.Context) {
	login := LoginRequest{}
	if err := c.ShouldBindBodyWith(&login, binding.JSON); err != nil {
		panic(err)
	}
	s, err := g.Login(login.Password)
	if err != nil {
		panic(err)
	}
	// session cookie: no max-age, gone when the browser closes
	c.SetCookie(KeySecToken, s.Token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, s)
}

func (g *Gate) LogoutHandler(c *gin.Context) {
	token, _ := c.Cookie(KeySecToken) // ErrNoCookie
	g.Logout(token)
	c.SetCookie(KeySecToken, "", -1, "/", "", false, true)
	c.AbortWithStatus(http.StatusNoContent)
}
