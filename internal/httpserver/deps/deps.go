package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Etherlyvan/movie-mate/internal/auth"
	"github.com/Etherlyvan/movie-mate/internal/catalog"
	"github.com/Etherlyvan/movie-mate/internal/feed"
	"github.com/Etherlyvan/movie-mate/internal/ledger"
	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/notify"
	"github.com/Etherlyvan/movie-mate/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	Store      store.UserStore
	Ledger     *ledger.Ledger
	Feed       *feed.Aggregator
	Dispatcher *notify.Dispatcher
	Auth       *auth.Service
	Catalog    *catalog.Client

	RedisClient *redis.Client // nil when running on the in-memory store

	VAPIDPublicKey string // handed to browsers so they can subscribe
	FeedLimit      int    // max items per activity feed source

	AllowedOrigins []string      // CORS origins for the browser frontend
	TrustProxy     bool          // true if running behind a trusted reverse proxy
	AuthRateLimit  int           // login/register attempts per window per IP (0 = disabled)
	AuthRateWindow time.Duration // window the attempts are counted over
}
