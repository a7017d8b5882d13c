package render

import (
	"html/template"
	"io"

	"github.com/rotisserie/eris"
)

var listingTemplate = template.Must(template.New("listing").Parse(`<section class="projects-grid" data-count="{{.Count}}">
<p class="results-count">{{.CountLabel}}</p>
{{- if .Empty}}
<div class="empty-state">{{.EmptyMessage}}</div>
{{- end}}
{{- range .Cards}}
<article class="project-card {{.StatusClass}}" data-project-id="{{.ID}}">
<header>
<span class="project-category">{{.Category}}</span>
<span class="project-status">{{.StatusLabel}}</span>
</header>
<h3 class="project-title">{{.Name}}</h3>
<p class="project-description">{{.Description}}</p>
<div class="progress-bar" role="progressbar" aria-valuenow="{{.Progress}}" aria-valuemin="0" aria-valuemax="100">
<div class="progress-fill" style="width: {{.Progress}}%"></div>
</div>
<p class="project-funding">{{.Funding}} <span class="progress-label">{{.ProgressLabel}}</span></p>
<ul class="project-stats">
<li class="contributors">{{.ContributorLabel}}</li>
<li class="deadline">{{.DeadlineLabel}}</li>
</ul>
<footer>
{{- range .Actions}}
<button type="button" class="btn-action" data-action="{{.}}">{{.}}</button>
{{- end}}
</footer>
</article>
{{- end}}
</section>
`))

// HTML writes the listing as an escaped markup fragment.
func HTML(w io.Writer, listing Listing) error {
	if err := listingTemplate.Execute(w, listing); err != nil {
		return eris.Wrap(err, "render: listing html")
	}
	return nil
}
