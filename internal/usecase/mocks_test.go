package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"geostud-api/internal/repository"
)

type memUsers struct {
	users []repository.User
}

func newMemUsers(users ...repository.User) *memUsers {
	return &memUsers{users: users}
}

func (m *memUsers) FindByExternalID(_ context.Context, externalID int64) (repository.User, error) {
	for _, u := range m.users {
		if u.ExternalID == externalID {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrUserNotFound
}

func (m *memUsers) ListEligible(_ context.Context, excludeID int64) ([]repository.User, error) {
	out := make([]repository.User, 0, len(m.users))
	for _, u := range m.users {
		if u.ID == excludeID || !u.IsActive || u.Bio == "" || len(u.PhotoURLs) == 0 {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type memFavorites struct {
	users *memUsers
	favs  map[int64][]repository.FavoriteLocation
}

func newMemFavorites(users *memUsers) *memFavorites {
	return &memFavorites{users: users, favs: make(map[int64][]repository.FavoriteLocation)}
}

func (m *memFavorites) set(userID int64, favs ...repository.FavoriteLocation) {
	m.favs[userID] = favs
}

func (m *memFavorites) ListByUser(_ context.Context, userID int64) ([]repository.FavoriteLocation, error) {
	return m.favs[userID], nil
}

func (m *memFavorites) ListByUsers(_ context.Context, userIDs []int64) (map[int64][]repository.FavoriteLocation, error) {
	out := make(map[int64][]repository.FavoriteLocation, len(userIDs))
	for _, id := range userIDs {
		if favs, ok := m.favs[id]; ok {
			out[id] = favs
		}
	}
	return out, nil
}

func (m *memFavorites) usersAt(locationID, excludeUserID int64) []repository.User {
	out := make([]repository.User, 0)
	for _, u := range m.users.users {
		if u.ID == excludeUserID || !u.IsActive {
			continue
		}
		for _, f := range m.favs[u.ID] {
			if f.LocationID == locationID {
				out = append(out, u)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *memFavorites) CountUsersAtLocation(_ context.Context, locationID, excludeUserID int64) (int, error) {
	return len(m.usersAt(locationID, excludeUserID)), nil
}

func (m *memFavorites) ListUsersAtLocation(_ context.Context, locationID, excludeUserID int64, limit, offset int) ([]repository.User, error) {
	all := m.usersAt(locationID, excludeUserID)
	if offset >= len(all) {
		return []repository.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

type pair struct{ a, b int64 }

type memEngagements struct {
	mu       sync.Mutex
	likes    map[pair]string
	dislikes map[pair]struct{}
	matches  map[pair]repository.Match
}

func newMemEngagements() *memEngagements {
	return &memEngagements{
		likes:    make(map[pair]string),
		dislikes: make(map[pair]struct{}),
		matches:  make(map[pair]repository.Match),
	}
}

func (m *memEngagements) LikeExists(_ context.Context, likerID, targetID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.likes[pair{likerID, targetID}]
	return ok, nil
}

func (m *memEngagements) DislikeExists(_ context.Context, dislikerID, targetID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.dislikes[pair{dislikerID, targetID}]
	return ok, nil
}

func (m *memEngagements) CreateLike(_ context.Context, likerID, targetID int64, message string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{likerID, targetID}
	if _, ok := m.likes[key]; ok {
		return false, nil
	}
	m.likes[key] = message
	return true, nil
}

func (m *memEngagements) CreateDislike(_ context.Context, dislikerID, targetID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{dislikerID, targetID}
	if _, ok := m.dislikes[key]; ok {
		return false, nil
	}
	m.dislikes[key] = struct{}{}
	return true, nil
}

func (m *memEngagements) CreateLikeWithMatch(_ context.Context, likerID, targetID int64, message string, match repository.Match) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	likeKey := pair{likerID, targetID}
	if _, ok := m.likes[likeKey]; !ok {
		m.likes[likeKey] = message
	}
	matchKey := pair{match.UserLowID, match.UserHighID}
	if _, ok := m.matches[matchKey]; ok {
		return false, nil
	}
	match.CreatedAt = time.Now()
	m.matches[matchKey] = match
	return true, nil
}

func (m *memEngagements) FindMatchByPair(_ context.Context, userLowID, userHighID int64) (repository.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[pair{userLowID, userHighID}]
	if !ok {
		return repository.Match{}, repository.ErrMatchNotFound
	}
	return match, nil
}

func (m *memEngagements) ListLikedTargets(_ context.Context, likerID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int64, 0)
	for k := range m.likes {
		if k.a == likerID {
			out = append(out, k.b)
		}
	}
	return out, nil
}

func (m *memEngagements) ListDislikedTargets(_ context.Context, dislikerID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int64, 0)
	for k := range m.dislikes {
		if k.a == dislikerID {
			out = append(out, k.b)
		}
	}
	return out, nil
}

func (m *memEngagements) ListInboundActors(_ context.Context, userID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[int64]struct{})
	for k := range m.likes {
		if k.b == userID {
			seen[k.a] = struct{}{}
		}
	}
	for k := range m.dislikes {
		if k.b == userID {
			seen[k.a] = struct{}{}
		}
	}
	out := make([]int64, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	return out, nil
}

func (m *memEngagements) likeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.likes)
}

func (m *memEngagements) matchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.matches)
}

func (m *memEngagements) dislikeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.dislikes)
}

type memNotifier struct {
	mu      sync.Mutex
	likes   []string
	matches []string
}

func (n *memNotifier) NotifyLike(_ context.Context, to, from PublicProfile, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.likes = append(n.likes, fmt.Sprintf("%d->%d", from.ExternalID, to.ExternalID))
	return nil
}

func (n *memNotifier) NotifyMatch(_ context.Context, to, from PublicProfile) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.matches = append(n.matches, fmt.Sprintf("%d->%d", from.ExternalID, to.ExternalID))
	return nil
}

func (n *memNotifier) likeCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.likes)
}

func (n *memNotifier) matchCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.matches)
}

func (n *memNotifier) matchRecipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.matches))
	copy(out, n.matches)
	sort.Strings(out)
	return out
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *memCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func (c *memCache) keysWithPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n
}
