package ui

import (
	stderrors "errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"ksfit/domain/fit"
	"ksfit/internal/datasource"
	"ksfit/internal/errors"

	"github.com/gin-gonic/gin"
)

// runForm is one decoded /run submission
type runForm struct {
	channels     datasource.Channels
	distribution string
}

// readRunForm decodes the run form. Multipart bodies are streamed part by
// part so a file over the limit still counts as selected and the text field
// read before it is kept. A file input left empty is not a file: browsers
// send it without a filename and it is treated as absent.
func readRunForm(c *gin.Context, maxFile int64) (runForm, error) {
	form := runForm{distribution: string(fit.DistributionNormal)}

	mr, err := c.Request.MultipartReader()
	if err == http.ErrNotMultipart {
		form.channels.Text = c.PostForm("data")
		form.distribution = c.DefaultPostForm("distribution", form.distribution)
		return form, nil
	}
	if err != nil {
		return form, uploadError(err, maxFile)
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return form, nil
		}
		if err != nil {
			if _, cut := form.channels.File.(datasource.OversizedFile); cut {
				// the body limit ended the stream inside the oversized part
				return form, nil
			}
			return form, uploadError(err, maxFile)
		}

		switch part.FormName() {
		case "data":
			form.channels.Text, err = readField(part)
		case "distribution":
			form.distribution, err = readField(part)
		case "file":
			if part.FileName() != "" {
				form.channels.File, err = readUpload(part, maxFile)
			}
		}
		part.Close()
		if err != nil {
			return form, uploadError(err, maxFile)
		}
	}
}

func readField(part *multipart.Part) (string, error) {
	data, err := io.ReadAll(part)
	return string(data), err
}

// readUpload buffers the file part, reading at most one byte past the limit
func readUpload(part *multipart.Part, maxFile int64) (datasource.File, error) {
	name := part.FileName()
	data, err := io.ReadAll(io.LimitReader(part, maxFile+1))

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) || int64(len(data)) > maxFile {
		log.Printf("[UI] upload %s exceeds %d bytes", name, maxFile)
		return datasource.OversizedFile{Filename: name, Limit: maxFile}, nil
	}
	if err != nil {
		return nil, err
	}
	return datasource.BytesFile{Filename: name, Data: data}, nil
}

// uploadError turns a body read failure into a fixed user-facing message
func uploadError(err error, maxFile int64) error {
	log.Printf("[UI] failed to read upload: %v", err)
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.FileUnreadable(datasource.FileTooLarge(maxFile))
	}
	return &errors.AppError{
		Code:    errors.CodeFileUnreadable,
		Message: "Could not process the file: the upload could not be read",
		Cause:   err,
	}
}
