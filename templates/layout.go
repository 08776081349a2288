package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"quotationdesk/services"
)

// UserOption is a demo account offered by the sign-in selector.
type UserOption struct {
	Username string
	Label    string
}

// HeaderData is shown in the page header on every page.
type HeaderData struct {
	CompanyName string
	User        *services.SessionUser
	Users       []UserOption
}

const toastScript = `
document.body.addEventListener("showToast", function (evt) { showToast(evt.detail.message, evt.detail.type); });
function showToast(message, type) {
  var box = document.getElementById("toast");
  if (!box) return;
  box.textContent = message;
  box.className = "toast toast-" + (type || "info");
  box.hidden = false;
  setTimeout(function () { box.hidden = true; }, 4000);
}
(function () {
  var m = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
  if (!m) return;
  document.cookie = "flash_toast=; Max-Age=0; path=/";
  try { var t = JSON.parse(decodeURIComponent(m[1])); showToast(t.message, t.type); } catch (e) {}
})();`

const pageStyle = `
body{font-family:Arial,Helvetica,sans-serif;margin:0;color:#212529;background:#f8f9fa}
header{display:flex;justify-content:space-between;align-items:center;padding:12px 24px;background:#212529;color:#fff}
header a{color:#fff;text-decoration:none;font-weight:bold}
main{padding:24px}
table{border-collapse:collapse;width:100%;background:#fff}
th,td{border:1px solid #dee2e6;padding:6px 8px;text-align:left;vertical-align:top}
th{background:#212529;color:#fff}
.panel{background:#fff;border:1px solid #dee2e6;padding:16px;margin-bottom:16px}
.filters{display:flex;gap:12px;flex-wrap:wrap;align-items:center;margin-bottom:12px}
.muted{color:#6c757d;font-size:12px}
.error{color:#b02a37}
.field-error{color:#b02a37;font-size:12px}
.toast{position:fixed;bottom:16px;right:16px;padding:10px 16px;color:#fff;background:#0d6efd}
.toast-error{background:#b02a37}
.toast-success{background:#198754}
.grid{display:grid;grid-template-columns:repeat(2,1fr);gap:4px 24px}
.actions{display:flex;gap:8px;margin-bottom:16px}`

// Page wraps content in the document shell: header, sign-in selector and
// toast area.
func Page(title string, header HeaderData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.printf(`<title>%s</title>`, esc(title))
		h.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		h.printf(`<style>%s</style></head><body>`, pageStyle)

		h.raw(`<header>`)
		h.printf(`<a href="/quotations">%s</a>`, esc(header.CompanyName))
		h.render(userMenu(header))
		h.raw(`</header>`)

		h.raw(`<main id="main">`)
		h.render(content)
		h.raw(`</main>`)

		h.raw(`<div id="toast" class="toast" hidden></div>`)
		h.printf(`<script>%s</script>`, toastScript)
		h.raw(`</body></html>`)
		return h.err
	})
}

func userMenu(header HeaderData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		if header.User != nil {
			h.raw(`<form method="post" action="/session/logout">`)
			h.printf(`<span>%s`, esc(header.User.DisplayName()))
			if header.User.Location != "" {
				h.printf(` (%s)`, esc(header.User.Location))
			}
			h.raw(`</span> <button type="submit">Sign out</button></form>`)
			return h.err
		}

		h.raw(`<form method="post" action="/session">`)
		h.raw(`<select name="username" aria-label="Sign in as">`)
		h.raw(`<option value="">Sign in as...</option>`)
		for _, u := range header.Users {
			h.printf(`<option value="%s">%s</option>`, esc(u.Username), esc(u.Label))
		}
		h.raw(`</select> <button type="submit">Sign in</button></form>`)
		return h.err
	})
}
