// Package guard wraps converted document HTML in a watermark and CSS that
// discourage selecting, copying and printing. It only deters casual copying.
// Anything rendered in the reader's browser can still be extracted.
package guard

import "strings"

const (
	// Caption is the watermark text drawn over every guarded document.
	Caption = "Protected Content - Read Only"

	// ContentClass is the class of the wrapper element.
	ContentClass = "document-content"

	wrapperOpen = `<div class="` + ContentClass + `">`
)

// Guard returns fragment wrapped for read-only display. A fragment that is
// already guarded is returned unchanged, so it never carries two watermarks.
func Guard(fragment string) string {
	if IsGuarded(fragment) {
		return fragment
	}
	var b strings.Builder
	b.Grow(len(securityStyle) + len(watermarkStyle) + len(wrapperOpen) + len(fragment) + len("</div>"))
	b.WriteString(securityStyle)
	b.WriteString(watermarkStyle)
	b.WriteString(wrapperOpen)
	b.WriteString(fragment)
	b.WriteString("</div>")
	return b.String()
}

// IsGuarded reports whether s is the output of Guard.
func IsGuarded(s string) bool {
	return strings.HasPrefix(s, securityStyle+watermarkStyle+wrapperOpen) && strings.HasSuffix(s, "</div>")
}

func watermarkCount(s string) int {
	return strings.Count(s, watermarkMarker)
}

const watermarkMarker = `content: "` + Caption + `";`

const watermarkStyle = `<style>
.document-content {
  position: relative;
  background-image:
    repeating-linear-gradient(
      45deg,
      transparent,
      transparent 100px,
      rgba(247, 153, 27, 0.05) 100px,
      rgba(247, 153, 27, 0.05) 200px
    );
}
.document-content::before {
  ` + watermarkMarker + `
  position: absolute;
  top: 50%;
  left: 50%;
  transform: translate(-50%, -50%) rotate(-45deg);
  font-size: 48px;
  color: rgba(247, 153, 27, 0.1);
  font-weight: bold;
  pointer-events: none;
  z-index: 1;
}
.document-content > * {
  position: relative;
  z-index: 2;
}
</style>`

const securityStyle = `<style>
* {
  -webkit-user-select: none !important;
  -moz-user-select: none !important;
  -ms-user-select: none !important;
  user-select: none !important;
  -webkit-touch-callout: none !important;
  -webkit-tap-highlight-color: transparent !important;
  -webkit-app-region: no-drag !important;
}
html, body {
  -webkit-user-select: none !important;
  -moz-user-select: none !important;
  user-select: none !important;
}
@media screen {
  .document-content::after {
    content: '';
    position: absolute;
    top: 0;
    left: 0;
    width: 100%;
    height: 100%;
    background: transparent;
    pointer-events: none;
    z-index: 1;
  }
}
@media print {
  * {
    display: none !important;
    visibility: hidden !important;
  }
  body {
    display: none !important;
    visibility: hidden !important;
  }
}
.document-content {
  font-family: 'Inter', -apple-system, BlinkMacSystemFont, sans-serif;
  line-height: 1.6;
  color: #374151;
  font-size: 14px;
}
.document-content h1, .document-content h2, .document-content h3 {
  color: #1f2937;
  margin-top: 1.5rem;
  margin-bottom: 0.75rem;
  font-size: 1.25rem;
}
.document-content h1 { font-size: 1.5rem; }
.document-content p { margin-bottom: 0.75rem; }
.document-content ul, .document-content ol {
  margin-left: 1rem;
  margin-bottom: 0.75rem;
}
.document-content strong {
  font-weight: 600;
  color: #f7991B;
}
.document-content table {
  width: 100%;
  border-collapse: collapse;
  margin: 0.75rem 0;
  font-size: 12px;
}
.document-content th, .document-content td {
  border: 1px solid #e5e7eb;
  padding: 0.25rem;
  text-align: left;
}
.document-content th {
  background-color: #f9fafb;
  font-weight: 600;
}
.document-content img { max-width: 100%; height: auto; }
@media (min-width: 640px) {
  .document-content { font-size: 16px; }
  .document-content h1, .document-content h2, .document-content h3 {
    margin-top: 2rem;
    margin-bottom: 1rem;
    font-size: 1.5rem;
  }
  .document-content h1 { font-size: 2rem; }
  .document-content p { margin-bottom: 1rem; }
  .document-content ul, .document-content ol {
    margin-left: 1.5rem;
    margin-bottom: 1rem;
  }
  .document-content table {
    margin: 1rem 0;
    font-size: 14px;
  }
  .document-content th, .document-content td { padding: 0.5rem; }
}
</style>`
