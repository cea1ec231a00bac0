package app

import (
	"github.com/asaskevich/EventBus"

	"github.com/florelia/floraladmin/config"
	"github.com/florelia/floraladmin/internal/api"
	"github.com/florelia/floraladmin/internal/catalog"
	"github.com/florelia/floraladmin/internal/dashboard"
	"github.com/florelia/floraladmin/internal/draft"
	"github.com/florelia/floraladmin/internal/notify"
	"github.com/florelia/floraladmin/internal/orders"
	"github.com/florelia/floraladmin/internal/payments"
	"github.com/florelia/floraladmin/internal/session"
	"github.com/florelia/floraladmin/internal/upload"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SessionProvider provides the persisted admin session
type SessionProvider interface {
	Session() *session.Store
}

// GatewayProvider provides the backend API gateway
type GatewayProvider interface {
	Gateway() *api.Gateway
	Bus() EventBus.Bus
}

// FormProvider provides serialized access to the product-add form and its
// upload pipeline. The form is never handed out directly; all access goes
// through WithForm.
type FormProvider interface {
	WithForm(fn func(*draft.Form) error) error
	Pipeline() *upload.Pipeline
	Previewer() *draft.Previewer
}

// ViewProvider provides the view services backing the console pages
type ViewProvider interface {
	Catalog() *catalog.Service
	Orders() *orders.Service
	Payments() *payments.Service
	Dashboard() *dashboard.Service
	Notifier() *notify.Poller
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	SessionProvider
	GatewayProvider
	FormProvider
	ViewProvider

	Release()
}
