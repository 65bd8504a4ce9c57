package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// timeKey is the context key the /now stamping stage writes to.
const timeKey = "time"

// BasicOptions configures the basic routes.
type BasicOptions struct {
	// ViewsDir holds index.html served at "/".
	ViewsDir string
	// MessageStyle is consulted on every /json request; "uppercase" switches casing.
	// Defaults to reading the MESSAGE_STYLE environment variable.
	MessageStyle func() string
	// Now defaults to time.Now.
	Now func() time.Time
}

// RegisterBasicRoutes registers the index page, /json, /now, the echo route and
// both /name routes.
func RegisterBasicRoutes(r *gin.Engine, opts BasicOptions) {
	if opts.MessageStyle == nil {
		opts.MessageStyle = func() string { return os.Getenv("MESSAGE_STYLE") }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r.GET("/", Index(opts.ViewsDir))
	r.GET("/json", JSONMessage(opts.MessageStyle))
	r.GET("/now", StampTime(opts.Now), Now)
	r.POST("/:word/echo", Echo)
	r.GET("/name", NameFromQuery)
	r.POST("/name", NameFromBody)
}

// Index serves the fixed landing page.
func Index(viewsDir string) gin.HandlerFunc {
	page := filepath.Join(viewsDir, "index.html")
	return func(c *gin.Context) {
		c.File(page)
	}
}

// JSONMessage returns {"message":"Hello json"}, upper-cased when style() is "uppercase".
func JSONMessage(style func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg := "Hello json"
		if style() == "uppercase" {
			msg = strings.ToUpper(msg)
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	}
}

// StampTime is the first /now stage: it records the current time and hands
// over to the next stage.
func StampTime(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(timeKey, now().Format(time.RFC3339))
		c.Next()
	}
}

// Now is the second /now stage: it returns whatever StampTime recorded.
func Now(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"time": c.GetString(timeKey)})
}

// Echo returns the :word path segment.
func Echo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"echo": c.Param("word")})
}

// NameFromQuery joins ?first= and ?last=. Missing parts are empty strings.
func NameFromQuery(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"name": c.Query("first") + " " + c.Query("last")})
}

// NameFromBody joins firstname and lastname from a url-encoded or JSON body.
// Values are not validated: non-string JSON values are printed as-is and missing
// fields are empty. Only a body that cannot be parsed is a 400.
func NameFromBody(c *gin.Context) {
	var first, last string
	if c.Request.ContentLength != 0 {
		switch c.ContentType() {
		case binding.MIMEJSON:
			var body map[string]interface{}
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			first, last = fieldString(body["firstname"]), fieldString(body["lastname"])
		default:
			if err := c.Request.ParseForm(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			first, last = c.PostForm("firstname"), c.PostForm("lastname")
		}
	}
	c.JSON(http.StatusOK, gin.H{"name": first + " " + last})
}

func fieldString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
