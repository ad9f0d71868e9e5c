package deeplinks

import (
	"log/slog"
	"net/url"

	"github.com/BrandonKowalski/deeplinks/pkg/deeplinks/constants"
	"github.com/google/uuid"
)

// Configuration holds the settings fixed for the lifetime of a Service.
type Configuration struct {
	Syntax           Syntax // Parameter markers in declarative paths
	Scheme           string // App scheme including "://", e.g. "app://"
	PatternCacheSize int    // Compiled paths kept in memory, DefaultPatternCacheSize if zero
}

// Sources holds the collaborators a Service works with.
type Sources struct {
	Provider      Provider           // Registered deeplinks, required
	Delegate      NavigationDelegate // Root reset, required if any deeplink needs it
	DataSource    DataSource         // Loader scenes and presentation host, required
	Canonicalizer Canonicalizer      // Universal link translation, optional
	Decoder       Decoder            // Parameter decoding, JSONDecoder if nil
	Logger        *slog.Logger       // Module logger if nil
}

// Service resolves URLs to deeplinks and runs them.
type Service struct {
	provider    Provider
	decoder     Decoder
	matcher     *matcher
	extractor   *extractor
	coordinator *coordinator
	logger      *slog.Logger
}

// New assembles a Service.
func New(cfg Configuration, src Sources) *Service {
	logger := src.Logger
	if logger == nil {
		logger = GetLogger()
	}

	decoder := src.Decoder
	if decoder == nil {
		decoder = JSONDecoder{}
	}

	cacheSize := cfg.PatternCacheSize
	if cacheSize <= 0 {
		cacheSize = constants.DefaultPatternCacheSize
	}

	return &Service{
		provider:    src.Provider,
		decoder:     decoder,
		matcher:     newMatcher(src.Canonicalizer, cfg.Syntax, cfg.Scheme, cacheSize, logger),
		extractor:   &extractor{canonicalizer: src.Canonicalizer},
		coordinator: &coordinator{delegate: src.Delegate, dataSource: src.DataSource},
		logger:      logger,
	}
}

// GetDeeplink returns the first registered deeplink matching u, or nil if
// none does. If a path checked before a match is broken, the lookup stops
// with a *ProcessingError of kind KindPatternInvalid or KindParameterPosition.
func (s *Service) GetDeeplink(u *url.URL) (Deeplink, error) {
	link, err := s.matcher.First(u, s.provider.Deeplinks())
	if err != nil {
		return nil, err
	}

	if link == nil {
		s.logger.Debug("no deeplink matches", "url", u.String())
	} else {
		s.logger.Debug("deeplink matched", "url", u.String(), "path", link.Path().String())
	}
	return link, nil
}

// Process runs link for u. Side effects happen through the collaborators,
// possibly after Process returns. Failures are reported through onError,
// at most once per call, and never together with the deeplink's action.
func (s *Service) Process(link Deeplink, u *url.URL, onError func(*ProcessingError)) {
	logger := s.logger.With("session", uuid.NewString(), "url", u.String())

	request := s.extractor.Extract(u)
	logger.Debug("processing deeplink", "segments", request.Segments, "parameters", len(request.Parameters))

	handle, err := link.bind(request.Segments, request.Parameters, s.decoder)
	if err != nil {
		s.coordinator.Fail(link, newParameterDecode(err), onError, logger)
		return
	}

	s.coordinator.Process(link, handle, onError, logger)
}

// Resolve looks up the deeplink for u and processes it. It reports whether
// a deeplink matched; lookup errors are returned and nothing is processed.
func (s *Service) Resolve(u *url.URL, onError func(*ProcessingError)) (bool, error) {
	link, err := s.GetDeeplink(u)
	if err != nil || link == nil {
		return false, err
	}

	s.Process(link, u, onError)
	return true, nil
}

// Extract returns the segments and raw parameters u carries.
func (s *Service) Extract(u *url.URL) Request {
	return s.extractor.Extract(u)
}

// ActiveLoader returns the loader scene currently on record, or nil.
func (s *Service) ActiveLoader() Scene {
	return s.coordinator.ActiveLoader()
}
