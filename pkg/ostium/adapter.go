package ostium

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"ostium-api/pkg/idempotency"
	"ostium-api/pkg/serviceerr"
)

// Builder constructs the SDK for one network. Swapped out in tests.
type Builder func(network string, nc *NetworkConfig, delegateKeyHex string) (SDK, error)

// Settings is everything the adapter needs from service configuration.
type Settings struct {
	Enabled            bool
	DelegatePrivateKey string
	Networks           *Config
}

// Adapter is the trading facade over the per-network SDK clients. It owns
// the gate checks every operation passes through, the idempotency cache for
// mutations, and the faucet rate limiter. Clients are built lazily and
// cached per network.
type Adapter struct {
	settings Settings
	build    Builder

	mu      sync.Mutex
	clients map[string]SDK

	idem   *idempotency.Cache
	faucet *rate.Limiter
	clock  func() time.Time
}

// AdapterOption customises adapter construction.
type AdapterOption func(*Adapter)

// WithBuilder replaces the SDK constructor, primarily for tests.
func WithBuilder(build Builder) AdapterOption {
	return func(a *Adapter) {
		if build != nil {
			a.build = build
		}
	}
}

// WithIdempotencyCache replaces the replay cache.
func WithIdempotencyCache(cache *idempotency.Cache) AdapterOption {
	return func(a *Adapter) {
		if cache != nil {
			a.idem = cache
		}
	}
}

// WithFaucetLimiter replaces the faucet rate limiter.
func WithFaucetLimiter(limiter *rate.Limiter) AdapterOption {
	return func(a *Adapter) {
		if limiter != nil {
			a.faucet = limiter
		}
	}
}

// WithAdapterClock overrides the time source used for response timestamps.
func WithAdapterClock(clock func() time.Time) AdapterOption {
	return func(a *Adapter) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// NewAdapter wires an adapter from settings. A nil Networks config falls
// back to built-in endpoint defaults.
func NewAdapter(settings Settings, opts ...AdapterOption) *Adapter {
	if settings.Networks == nil {
		settings.Networks = DefaultConfig()
	}
	a := &Adapter{
		settings: settings,
		clients:  make(map[string]SDK),
		idem:     idempotency.New(),
		faucet:   rate.NewLimiter(rate.Every(time.Minute), 1),
		clock:    time.Now,
	}
	a.build = func(network string, nc *NetworkConfig, delegateKeyHex string) (SDK, error) {
		return NewClient(network, nc, delegateKeyHex)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// sdk returns the cached client for a network, building it on first use.
// Read operations do not require a delegate key.
func (a *Adapter) sdk(network string) (SDK, *serviceerr.Error) {
	if !ValidNetwork(network) {
		return nil, serviceerr.BadRequest(serviceerr.CodeInvalidNetwork,
			"network must be 'testnet' or 'mainnet'").
			WithDetails(map[string]any{"network": network})
	}
	if !a.settings.Enabled {
		return nil, serviceerr.Unavailable(serviceerr.CodeDisabled,
			"Ostium integration is disabled")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if client, ok := a.clients[network]; ok {
		return client, nil
	}
	client, err := a.build(network, a.settings.Networks.Networks[network], a.settings.DelegatePrivateKey)
	if err != nil {
		return nil, serviceerr.Unavailable(serviceerr.CodeSDKUnavailable,
			"Ostium SDK is unavailable").
			WithDetails(map[string]any{"error": err.Error()})
	}
	a.clients[network] = client
	return client, nil
}

// delegatedSDK is sdk plus the delegate-key requirement for mutations and
// account reads that default to the delegate address.
func (a *Adapter) delegatedSDK(network string) (SDK, *serviceerr.Error) {
	if a.settings.Enabled && a.settings.DelegatePrivateKey == "" {
		if !ValidNetwork(network) {
			return nil, serviceerr.BadRequest(serviceerr.CodeInvalidNetwork,
				"network must be 'testnet' or 'mainnet'").
				WithDetails(map[string]any{"network": network})
		}
		return nil, serviceerr.Unavailable(serviceerr.CodeDelegateKeyMissing,
			"delegate private key is not configured")
	}
	return a.sdk(network)
}

// Idempotency exposes the replay cache for observability endpoints.
func (a *Adapter) Idempotency() *idempotency.Cache {
	return a.idem
}
