package config

import "ogef/pkg/constants"

type UploadConfig struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64
	PathPrefix       string
}

var UploadContexts = map[constants.UploadContext]UploadConfig{
	constants.UploadContextOfficePhoto: {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
		MaxSizeMB:        5,
		PathPrefix:       "gef",
	},
}
