package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UniqueFileName 元の拡張子を保持した一意なファイル名を生成
func UniqueFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.New().String() + ext
}
