package app

import (
	"os"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

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

const previewWorkers = 2

type Application struct {
	appConfig *config.AppConfig
	sess      *session.Store
	gateway   *api.Gateway
	bus       EventBus.Bus
	previewer *draft.Previewer
	formMu    sync.Mutex
	form      *draft.Form
	pipeline  *upload.Pipeline
	catalog   *catalog.Service
	orders    *orders.Service
	payments  *payments.Service
	dashboard *dashboard.Service
	notifier  *notify.Poller
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider  = (*Application)(nil)
	_ SessionProvider = (*Application)(nil)
	_ GatewayProvider = (*Application)(nil)
	_ FormProvider    = (*Application)(nil)
	_ ViewProvider    = (*Application)(nil)
	_ AppContext      = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)

	cfg.InitDirs()

	a.sess, err = session.Open(cfg.SessionDBPath())
	if err != nil {
		return errors.Wrap(err, "init session store")
	}

	a.bus = EventBus.New()
	a.gateway = api.NewGateway(cfg.Backend.BaseURL, a.sess)

	a.previewer, err = draft.NewPreviewer(previewWorkers)
	if err != nil {
		return errors.Wrap(err, "init previewer")
	}

	a.form = &draft.Form{}
	a.pipeline = upload.NewPipeline(a.gateway, a.bus)
	a.catalog = catalog.NewService(a.gateway, a.sess)
	a.orders = orders.NewService(a.gateway)
	a.payments = payments.NewService(a.gateway, cfg.Stripe.PublishableKey)
	a.dashboard = dashboard.NewService(a.gateway)
	a.notifier = notify.NewPoller(a.gateway, a.bus)

	if err := a.notifier.Start(); err != nil {
		return errors.Wrap(err, "start notification poller")
	}

	zap.S().Infof("console ready, backend: %s", cfg.Backend.BaseURL)
	return nil
}

func (a *Application) Session() *session.Store { return a.sess }
func (a *Application) Gateway() *api.Gateway   { return a.gateway }
func (a *Application) Bus() EventBus.Bus       { return a.bus }

// WithForm serializes access to the single product form instance; the
// original form is single-threaded by construction, console handlers are not.
// This is the only way to reach the form, submissions included.
func (a *Application) WithForm(fn func(*draft.Form) error) error {
	a.formMu.Lock()
	defer a.formMu.Unlock()
	return fn(a.form)
}
func (a *Application) Pipeline() *upload.Pipeline    { return a.pipeline }
func (a *Application) Previewer() *draft.Previewer   { return a.previewer }
func (a *Application) Catalog() *catalog.Service     { return a.catalog }
func (a *Application) Orders() *orders.Service       { return a.orders }
func (a *Application) Payments() *payments.Service   { return a.payments }
func (a *Application) Dashboard() *dashboard.Service { return a.dashboard }
func (a *Application) Notifier() *notify.Poller      { return a.notifier }

// Release releases application resources
func (a *Application) Release() {
	if a.notifier != nil {
		a.notifier.Stop()
	}
	if a.previewer != nil {
		a.previewer.Release()
	}
	if a.sess != nil {
		_ = a.sess.Close()
	}
	_ = zap.L().Sync()
}
