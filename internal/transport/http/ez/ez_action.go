// Package ez 管理端的一行式动作注册：绑定入参、跑 handler、统一错误映射。
package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	resp "mentorize-api/internal/transport/http/response"
)

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // 自己从 c.Param 取
)

type AErr struct {
	Status int
	Msg    string
	Err    error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error { return &AErr{Status: http.StatusBadRequest, Msg: msg} }
func NotFound(msg string) error   { return &AErr{Status: http.StatusNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Status: http.StatusInternalServerError, Msg: msg, Err: err}
}

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// Action I 入参 O 出参；UseTx 时 handler 拿到的是事务句柄
type Action[I any, O any] struct {
	Method  string
	Path    string
	Binder  Binder
	UseTx   bool
	Handler func(c *gin.Context, db *gorm.DB, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, db *gorm.DB, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			resp.Err(c, http.StatusBadRequest, bindErr.Error())
			return
		}

		run := func(tx *gorm.DB) (O, error) { return a.Handler(c, tx, &in) }
		var out O
		var err error
		if a.UseTx {
			err = db.WithContext(c).Transaction(func(tx *gorm.DB) error {
				o, e := run(tx)
				out = o
				return e
			})
		} else {
			out, err = run(db.WithContext(c))
		}

		if err != nil {
			var ae *AErr
			if errors.As(err, &ae) {
				resp.Err(c, ae.Status, ae.Error())
				return
			}
			resp.Err(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}
