package response

import (
	"net/http"

	"github.com/dmitrymomot/waypoint/core/handler"
)

type redirect struct {
	url    string
	status int
}

// StatusCode returns the redirect status.
func (rd redirect) StatusCode() int {
	return rd.status
}

// Render writes the Location header and status via http.Redirect.
func (rd redirect) Render(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, rd.url, rd.status)
	return nil
}

// Redirect creates a 302 Found response.
func Redirect(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectPermanent creates a 301 Moved Permanently response.
func RedirectPermanent(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusMovedPermanently)
}

// RedirectSeeOther creates a 303 See Other response, typically sent after a POST.
func RedirectSeeOther(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus creates a redirect with a custom status code.
// Codes outside the 3xx range fall back to 302.
func RedirectWithStatus(url string, status int) handler.Response {
	if status < 300 || status >= 400 {
		status = http.StatusFound
	}
	return redirect{url: url, status: status}
}
