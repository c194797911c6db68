package recommend

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"career-recommender/internal/shared/util"
)

const (
	resumeField        = "resume"
	maxFieldLength     = 5000
	maxMultipartMemory = 32 << 20
)

// ReadInput parses a JSON body, a urlencoded form, or a multipart form with an optional "resume" file.
func ReadInput(c *gin.Context, maxBytes int64) (Input, error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}

	if c.ContentType() == gin.MIMEJSON {
		var req recommendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return Input{}, fmt.Errorf("%w: %s", ErrInvalidInput, bodyError(err))
		}
		return Input{Skills: req.Skills, Interests: req.Interests}, nil
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			return Input{}, fmt.Errorf("%w: %s", ErrInvalidInput, bodyError(err))
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return Input{}, fmt.Errorf("%w: %s", ErrInvalidInput, bodyError(err))
	}

	in := Input{
		Skills:    c.PostForm("skills"),
		Interests: c.PostForm("interests"),
	}
	if len(in.Skills) > maxFieldLength || len(in.Interests) > maxFieldLength {
		return Input{}, fmt.Errorf("%w: skills and interests are limited to %d characters", ErrInvalidInput, maxFieldLength)
	}

	fileHeader, err := c.FormFile(resumeField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return in, nil
		}
		return Input{}, fmt.Errorf("%w: %s", ErrInvalidInput, bodyError(err))
	}
	if fileHeader.Size == 0 {
		return in, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Input{}, fmt.Errorf("%w: unable to read resume", ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Input{}, fmt.Errorf("%w: unable to read resume", ErrInvalidInput)
	}
	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		name = ""
	}
	in.Resume = &Upload{
		FileName: name,
		MimeType: strings.TrimSpace(fileHeader.Header.Get("Content-Type")),
		Data:     data,
	}
	return in, nil
}

func bodyError(err error) string {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)
	}
	return "invalid request body"
}
