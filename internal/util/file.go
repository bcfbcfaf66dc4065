package util

import (
	"fmt"
	"strings"
)

// 上传接口接受的媒体类型（与前端约定一致）
var AllowedUploadTypes = []string{
	"application/pdf",
	"text/plain",
	"text/csv",
	"image/jpeg",
	"image/png",
	"image/jpg",
}

// CheckUploadType 校验声明的媒体类型是否在白名单内，错误信息点名违规类型
func CheckUploadType(mimeType string) error {
	mt := strings.TrimSpace(mimeType)
	// 去掉 "text/plain; charset=utf-8" 这类参数
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	for _, allowed := range AllowedUploadTypes {
		if mt == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFileType, mimeType)
}
