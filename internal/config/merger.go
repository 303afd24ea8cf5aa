package config

// MergeSettings merges two Settings objects.
// Non-empty values from 'overlay' override values in 'base'.
func MergeSettings(base, overlay *Settings) *Settings {
	if base == nil {
		return overlay
	}
	if overlay == nil {
		return base
	}

	return &Settings{
		ImageProvider:  mergeString(base.ImageProvider, overlay.ImageProvider),
		ChatProvider:   mergeString(base.ChatProvider, overlay.ChatProvider),
		ImageModel:     mergeString(base.ImageModel, overlay.ImageModel),
		ChatModel:      mergeString(base.ChatModel, overlay.ChatModel),
		RequestTimeout: mergeString(base.RequestTimeout, overlay.RequestTimeout),
		ServerAddr:     mergeString(base.ServerAddr, overlay.ServerAddr),
		StylesFile:     mergeString(base.StylesFile, overlay.StylesFile),
	}
}

func mergeString(base, overlay string) string {
	if overlay != "" {
		return overlay
	}
	return base
}
