package designer

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/mailforge/designer/pkg/coreemail"
	templates "github.com/mailforge/designer/pkg/designer"
	"github.com/mailforge/designer/pkg/dispatch"
)

// actorHeader carries the identity recorded as changedBy on version
// snapshots. Empty or absent attributes the change to the system actor.
const actorHeader = "X-Changed-By"

// RouterOptions configures the designer module router. Templates, CoreEmails
// and Dispatcher are required; ServerURL feeds the links inside sample data.
type RouterOptions struct {
	Templates  *templates.Service
	CoreEmails *coreemail.Service
	Dispatcher *dispatch.Dispatcher
	ServerURL  string
	Logger     *slog.Logger
}

// Router creates the designer module router.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Mount("/designer", designer.Router(designer.RouterOptions{
//	    Templates:  templateSvc,
//	    CoreEmails: coreEmailSvc,
//	    Dispatcher: dispatcher,
//	    ServerURL:  cfg.ServerURL,
//	}))
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	h := &handler{
		templates:  opts.Templates,
		core:       opts.CoreEmails,
		dispatcher: opts.Dispatcher,
		serverURL:  opts.ServerURL,
		log:        log,
	}

	r := chi.NewRouter()

	r.Route("/templates", func(t chi.Router) {
		t.Get("/", h.listTemplates)
		t.Post("/duplicate/{sourceId}", h.duplicateTemplate)
		t.Route("/{templateId}", func(one chi.Router) {
			one.Get("/", h.getTemplate)
			one.Post("/", h.saveTemplate)
			one.Delete("/", h.deleteTemplate)
			one.Route("/versions", func(v chi.Router) {
				v.Get("/", h.listVersions)
				v.Get("/{versionId}", h.getVersion)
				v.Post("/{versionId}/restore", h.restoreVersion)
				v.Delete("/{versionId}", h.deleteVersion)
			})
		})
	})

	r.Get("/download/{templateId}", h.downloadTemplate)

	r.Route("/core", func(c chi.Router) {
		c.Get("/{coreEmailType}", h.getCoreEmail)
		c.Post("/{coreEmailType}", h.saveCoreEmail)
	})

	r.Route("/email", func(e chi.Router) {
		e.Get("/status", h.emailStatus)
		e.Get("/sample-data/{coreEmailType}", h.sampleData)
		e.Post("/test", h.sendTestEmail)
	})

	r.Get("/config", h.getEditorConfig)
	r.Get("/config/{configKey}", h.getEditorConfigKey)

	return r
}

type handler struct {
	templates  *templates.Service
	core       *coreemail.Service
	dispatcher *dispatch.Dispatcher
	serverURL  string
	log        *slog.Logger
}
