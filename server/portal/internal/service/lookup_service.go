package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/abdhfz93/sipdesk/models/portal"
	redispkg "github.com/abdhfz93/sipdesk/pkg/redis"
)

// Lookup cache kinds and TTL.
const (
	lookupKindServers   = "servers"
	lookupKindClients   = "clients"
	lookupKindPersonnel = "personnel"

	lookupCacheExpiration = 30 * time.Minute
)

// LookupService serves the suggested values behind the record form pickers.
// Server and client names come from the masterlist, personnel from the names
// already credited on maintenance records. Results are cached in redis; a
// missing or failing cache degrades to uncached reads.
type LookupService struct {
	db     *gorm.DB
	cache  *redispkg.Handler
	keys   *redispkg.KeyBuilder
	logger *zap.Logger
}

// NewLookupService creates a new LookupService. cache may be nil.
func NewLookupService(db *gorm.DB, cache *redispkg.Handler, keys *redispkg.KeyBuilder, logger *zap.Logger) *LookupService {
	return &LookupService{db: db, cache: cache, keys: keys, logger: logger}
}

// ServerNames returns the known SIP server ids.
func (s *LookupService) ServerNames(ctx context.Context) ([]string, error) {
	return s.cached(ctx, lookupKindServers, func() ([]string, error) {
		var names []string
		err := s.db.WithContext(ctx).Model(&portal.Masterlist{}).
			Distinct("sip_id").Where("sip_id <> ''").Order("sip_id ASC").
			Pluck("sip_id", &names).Error
		if err != nil {
			return nil, NewUnavailableError("failed to load server names", err)
		}
		return names, nil
	})
}

// ClientNames returns the known customer names.
func (s *LookupService) ClientNames(ctx context.Context) ([]string, error) {
	return s.cached(ctx, lookupKindClients, func() ([]string, error) {
		var names []string
		err := s.db.WithContext(ctx).Model(&portal.Masterlist{}).
			Distinct("company_name").Where("company_name <> ''").Order("company_name ASC").
			Pluck("company_name", &names).Error
		if err != nil {
			return nil, NewUnavailableError("failed to load client names", err)
		}
		return names, nil
	})
}

// Personnel returns every name credited as performer or approver on an
// existing maintenance record.
func (s *LookupService) Personnel(ctx context.Context) ([]string, error) {
	return s.cached(ctx, lookupKindPersonnel, func() ([]string, error) {
		var rows []struct {
			PerformedBy string
			Approver    string
		}
		err := s.db.WithContext(ctx).Model(&portal.MaintenanceRecord{}).
			Select("performed_by, approver").Find(&rows).Error
		if err != nil {
			return nil, NewUnavailableError("failed to load personnel", err)
		}

		seen := make(map[string]string)
		for _, row := range rows {
			for _, name := range portal.SplitNames(row.PerformedBy) {
				seen[strings.ToLower(name)] = name
			}
			if name := strings.TrimSpace(row.Approver); name != emptyString {
				seen[strings.ToLower(name)] = name
			}
		}

		names := make([]string, 0, len(seen))
		for _, name := range seen {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	})
}

// MaintenanceReasons returns the suggested reason vocabulary.
func (s *LookupService) MaintenanceReasons() []string {
	return portal.KnownMaintenanceReasons
}

// Invalidate drops every lookup cache entry.
func (s *LookupService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx,
		s.keys.LookupKey(lookupKindServers),
		s.keys.LookupKey(lookupKindClients),
		s.keys.LookupKey(lookupKindPersonnel))
}

func (s *LookupService) cached(ctx context.Context, kind string, load func() ([]string, error)) ([]string, error) {
	if s.cache == nil {
		return load()
	}

	key := s.keys.LookupKey(kind)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var names []string
		if err := json.Unmarshal([]byte(raw), &names); err == nil {
			return names, nil
		}
	} else if err != redispkg.Nil {
		s.logger.Warn("lookup cache read failed", zap.String("kind", kind), zap.Error(err))
	}

	names, err := load()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(names); err == nil {
		if err := s.cache.SetWithExpireTime(ctx, key, string(data), lookupCacheExpiration); err != nil {
			s.logger.Warn("lookup cache write failed", zap.String("kind", kind), zap.Error(err))
		}
	}
	return names, nil
}
