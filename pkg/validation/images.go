package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-heroform/pkg/hero"
)

// MessageImagesRequired is reported when a new hero has no image attached.
const MessageImagesRequired = "Please select at least one image"

// DefaultImageExtensions mirrors the file picker accept list.
var DefaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// ImageRules constrains an image selection.
type ImageRules struct {
	MinCount   int      `yaml:"minCount" json:"minCount"`
	MaxCount   int      `yaml:"maxCount" json:"maxCount"`
	MaxBytes   int64    `yaml:"maxBytes" json:"maxBytes"`
	Extensions []string `yaml:"extensions" json:"extensions"`
}

// DefaultImageRules returns the stock limits: up to 10 files of at most 5 MiB
// each, restricted to DefaultImageExtensions.
func DefaultImageRules() ImageRules {
	return ImageRules{
		MaxCount:   10,
		MaxBytes:   5 << 20,
		Extensions: append([]string(nil), DefaultImageExtensions...),
	}
}

// Accept renders the extension list in file input "accept" syntax.
func (r ImageRules) Accept() string {
	return strings.Join(r.normalizedExtensions(), ", ")
}

func (r ImageRules) normalizedExtensions() []string {
	out := make([]string, 0, len(r.Extensions))
	for _, ext := range r.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// ValidateImages checks count, extension and size limits. An empty selection
// passes unless MinCount requires files; the create-mode requirement is
// enforced by the caller.
func ValidateImages(images []hero.Image, rules ImageRules) hero.FieldErrors {
	var errs hero.FieldErrors

	if rules.MinCount > 0 && len(images) < rules.MinCount {
		errs.Add(hero.FieldImages, fmt.Sprintf("Please select at least %d image(s)", rules.MinCount))
	}
	if rules.MaxCount > 0 && len(images) > rules.MaxCount {
		errs.Add(hero.FieldImages, fmt.Sprintf("Please select no more than %d images", rules.MaxCount))
	}

	allowed := rules.normalizedExtensions()
	for _, img := range images {
		name := strings.TrimSpace(img.Filename)
		if name == "" {
			errs.Add(hero.FieldImages, "Image file name is missing")
			continue
		}
		if len(allowed) > 0 && !containsString(allowed, img.Ext()) {
			errs.Add(hero.FieldImages, fmt.Sprintf("%s: only %s files are allowed", name, strings.Join(allowed, ", ")))
		}
		if img.Size() == 0 {
			errs.Add(hero.FieldImages, fmt.Sprintf("%s: file is empty", name))
		}
		if rules.MaxBytes > 0 && img.Size() > rules.MaxBytes {
			errs.Add(hero.FieldImages, fmt.Sprintf("%s: file exceeds %s", name, formatBytes(rules.MaxBytes)))
		}
	}
	return errs
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func formatBytes(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit && n%(unit*unit) == 0:
		return fmt.Sprintf("%d MiB", n/(unit*unit))
	case n >= unit && n%unit == 0:
		return fmt.Sprintf("%d KiB", n/unit)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
