package common

import (
	"mime/multipart"
	"net/http"
	"sync"

	"fanboard/internal/pkg/uploader"
	"fanboard/pkg/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传图片 (支持批量)，头像和队徽都走这里
// @Summary 上传图片到 OSS (支持批量)
// @Tags Common
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Files"
// @Success 200 {object} response.Response{data=[]string} "URLs"
// @Router /upload [post]
func UploadFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid form data")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "No files uploaded")
		return
	}

	if uploader.GlobalUploader == nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Uploader not initialized")
		return
	}

	// 结果按输入顺序写入各自下标，不需要额外加锁
	urls := make([]string, len(files))

	var wg sync.WaitGroup
	var errOnce sync.Once
	var uploadErr error

	// 限制并发数为 5，避免过多协程
	sem := make(chan struct{}, 5)

	for i, file := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, f *multipart.FileHeader) {
			defer wg.Done()
			defer func() { <-sem }()

			url, err := uploader.GlobalUploader.UploadFile(f)
			if err != nil {
				errOnce.Do(func() { uploadErr = err })
				return
			}
			urls[idx] = url
		}(i, file)
	}

	wg.Wait()

	if uploadErr != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, uploadErr.Error())
		return
	}

	response.Success(c, urls)
}
