package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/campus-union/cms-service/internal/domain"
	"github.com/campus-union/cms-service/internal/events"
	"github.com/campus-union/cms-service/internal/mail"
	"github.com/campus-union/cms-service/internal/repository"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

func ptr[T any](v T) *T {
	return &v
}

func requireDomainError(t *testing.T, err error, code string) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}

// ----------------------------------------------------------------------------
// in-memory repositories
// ----------------------------------------------------------------------------

type memUserRepo struct {
	users  map[int64]domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]domain.User), nextID: 1}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = *user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == identifier || user.Email == identifier {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) ListActive(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, user := range m.users {
		if user.IsActive {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memRoleRepo struct {
	roles  map[int64]domain.Role
	nextID int64
}

func newMemRoleRepo() *memRoleRepo {
	return &memRoleRepo{roles: make(map[int64]domain.Role), nextID: 1}
}

func (m *memRoleRepo) Create(_ context.Context, role *domain.Role) error {
	role.ID = m.nextID
	m.nextID++
	role.CreatedAt = time.Now()
	role.UpdatedAt = role.CreatedAt
	m.roles[role.ID] = *role
	return nil
}

func (m *memRoleRepo) Update(_ context.Context, role *domain.Role) error {
	if _, ok := m.roles[role.ID]; !ok {
		return pgx.ErrNoRows
	}
	role.UpdatedAt = time.Now()
	m.roles[role.ID] = *role
	return nil
}

func (m *memRoleRepo) GetByID(_ context.Context, id int64) (*domain.Role, error) {
	role, ok := m.roles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &role, nil
}

func (m *memRoleRepo) GetByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range m.roles {
		if role.Name == name {
			r := role
			return &r, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(m.roles))
	for _, role := range m.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRoleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.roles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.roles, id)
	return nil
}

type memAdminRepo struct {
	admins map[int64]domain.Admin
	roles  *memRoleRepo
	nextID int64
}

func newMemAdminRepo(roles *memRoleRepo) *memAdminRepo {
	return &memAdminRepo{admins: make(map[int64]domain.Admin), roles: roles, nextID: 1}
}

func (m *memAdminRepo) withRole(admin domain.Admin) *domain.Admin {
	if admin.RoleID != nil && m.roles != nil {
		if role, ok := m.roles.roles[*admin.RoleID]; ok {
			admin.Role = &role
		}
	}
	return &admin
}

func (m *memAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	admin.ID = m.nextID
	m.nextID++
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	m.admins[admin.ID] = *admin
	return nil
}

func (m *memAdminRepo) Update(_ context.Context, admin *domain.Admin) error {
	if _, ok := m.admins[admin.ID]; !ok {
		return pgx.ErrNoRows
	}
	admin.UpdatedAt = time.Now()
	m.admins[admin.ID] = *admin
	return nil
}

func (m *memAdminRepo) List(_ context.Context, limit, offset int) ([]domain.Admin, error) {
	all := make([]domain.Admin, 0, len(m.admins))
	for _, admin := range m.admins {
		all = append(all, *m.withRole(admin))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, limit, offset), nil
}

func (m *memAdminRepo) GetByIDWithRole(_ context.Context, id int64) (*domain.Admin, error) {
	admin, ok := m.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return m.withRole(admin), nil
}

func (m *memAdminRepo) GetByUsernameWithRole(_ context.Context, username string) (*domain.Admin, error) {
	for _, admin := range m.admins {
		if admin.Username == username {
			return m.withRole(admin), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memAdminRepo) GetByIdentifierWithRole(_ context.Context, identifier string) (*domain.Admin, error) {
	for _, admin := range m.admins {
		if admin.Username == identifier || admin.Email == identifier {
			return m.withRole(admin), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memAdminRepo) SetRole(_ context.Context, adminID int64, roleID *int64) error {
	admin, ok := m.admins[adminID]
	if !ok {
		return pgx.ErrNoRows
	}
	admin.RoleID = roleID
	admin.Role = nil
	m.admins[adminID] = admin
	return nil
}

type memNewsRepo struct {
	articles  map[int64]domain.NewsArticle
	nextID    int64
	createErr error
	updateErr error
}

func newMemNewsRepo() *memNewsRepo {
	return &memNewsRepo{articles: make(map[int64]domain.NewsArticle), nextID: 1}
}

func (m *memNewsRepo) Create(_ context.Context, article *domain.NewsArticle) error {
	if m.createErr != nil {
		return m.createErr
	}
	article.ID = m.nextID
	m.nextID++
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	m.articles[article.ID] = *article
	return nil
}

func (m *memNewsRepo) Update(_ context.Context, article *domain.NewsArticle) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.articles[article.ID]; !ok {
		return pgx.ErrNoRows
	}
	article.UpdatedAt = time.Now()
	m.articles[article.ID] = *article
	return nil
}

func (m *memNewsRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.articles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.articles, id)
	return nil
}

func (m *memNewsRepo) GetByID(_ context.Context, id int64) (*domain.NewsArticle, error) {
	article, ok := m.articles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &article, nil
}

func (m *memNewsRepo) GetBySlug(_ context.Context, slug string) (*domain.NewsArticle, error) {
	for _, article := range m.articles {
		if article.Slug == slug {
			a := article
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memNewsRepo) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	for _, article := range m.articles {
		if article.Slug == slug && article.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memNewsRepo) matches(article domain.NewsArticle, filter repository.NewsFilter) bool {
	return filter.CreatedBy == nil || article.CreatedBy == *filter.CreatedBy
}

func (m *memNewsRepo) List(_ context.Context, filter repository.NewsFilter) ([]domain.NewsArticle, error) {
	var out []domain.NewsArticle
	for _, article := range m.articles {
		if m.matches(article, filter) {
			out = append(out, article)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return paginate(out, filter.Limit, filter.Offset), nil
}

func (m *memNewsRepo) Count(_ context.Context, filter repository.NewsFilter) (int, error) {
	count := 0
	for _, article := range m.articles {
		if m.matches(article, filter) {
			count++
		}
	}
	return count, nil
}

type memLeaderRepo struct {
	leaders map[int64]domain.Leader
	nextID  int64
}

func newMemLeaderRepo() *memLeaderRepo {
	return &memLeaderRepo{leaders: make(map[int64]domain.Leader), nextID: 1}
}

func (m *memLeaderRepo) Create(_ context.Context, leader *domain.Leader) error {
	leader.ID = m.nextID
	m.nextID++
	leader.CreatedAt = time.Now()
	leader.UpdatedAt = leader.CreatedAt
	m.leaders[leader.ID] = *leader
	return nil
}

func (m *memLeaderRepo) Update(_ context.Context, leader *domain.Leader) error {
	if _, ok := m.leaders[leader.ID]; !ok {
		return pgx.ErrNoRows
	}
	leader.UpdatedAt = time.Now()
	m.leaders[leader.ID] = *leader
	return nil
}

func (m *memLeaderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.leaders[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.leaders, id)
	return nil
}

func (m *memLeaderRepo) GetByID(_ context.Context, id int64) (*domain.Leader, error) {
	leader, ok := m.leaders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &leader, nil
}

func (m *memLeaderRepo) List(_ context.Context, filter repository.LeaderFilter) ([]domain.Leader, error) {
	var out []domain.Leader
	for _, leader := range m.leaders {
		if filter.Campus != nil && leader.Campus != *filter.Campus {
			continue
		}
		if filter.Category != nil && leader.Category != *filter.Category {
			continue
		}
		if filter.Year != nil && leader.YearOfService != *filter.Year {
			continue
		}
		out = append(out, leader)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Campus != out[j].Campus {
			return out[i].Campus < out[j].Campus
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	if filter.Limit > 0 {
		return paginate(out, filter.Limit, filter.Offset), nil
	}
	return out, nil
}

func (m *memLeaderRepo) CountByGroup(_ context.Context, campus domain.Campus, category domain.LeaderCategory) (int, error) {
	count := 0
	for _, leader := range m.leaders {
		if leader.Campus == campus && leader.Category == category {
			count++
		}
	}
	return count, nil
}

func (m *memLeaderRepo) UpdateDisplayOrders(_ context.Context, updates []repository.DisplayOrderUpdate) error {
	for _, update := range updates {
		leader, ok := m.leaders[update.ID]
		if !ok {
			return pgx.ErrNoRows
		}
		leader.DisplayOrder = update.DisplayOrder
		m.leaders[update.ID] = leader
	}
	return nil
}

func (m *memLeaderRepo) DistinctYears(_ context.Context) ([]string, error) {
	return distinctYears(func(yield func(string)) {
		for _, leader := range m.leaders {
			yield(leader.YearOfService)
		}
	}), nil
}

type memGalleryRepo struct {
	items     map[int64]domain.GalleryItem
	nextID    int64
	createErr error
}

func newMemGalleryRepo() *memGalleryRepo {
	return &memGalleryRepo{items: make(map[int64]domain.GalleryItem), nextID: 1}
}

func (m *memGalleryRepo) Create(_ context.Context, item *domain.GalleryItem) error {
	if m.createErr != nil {
		return m.createErr
	}
	item.ID = m.nextID
	m.nextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	m.items[item.ID] = *item
	return nil
}

func (m *memGalleryRepo) Update(_ context.Context, item *domain.GalleryItem) error {
	if _, ok := m.items[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	item.UpdatedAt = time.Now()
	m.items[item.ID] = *item
	return nil
}

func (m *memGalleryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *memGalleryRepo) GetByID(_ context.Context, id int64) (*domain.GalleryItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (m *memGalleryRepo) List(_ context.Context, filter repository.GalleryFilter) ([]domain.GalleryItem, error) {
	var out []domain.GalleryItem
	for _, item := range m.items {
		if filter.Category != nil && item.Category != *filter.Category {
			continue
		}
		if filter.Year != nil && (item.Year == nil || *item.Year != *filter.Year) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	if filter.Limit > 0 {
		return paginate(out, filter.Limit, filter.Offset), nil
	}
	return out, nil
}

func (m *memGalleryRepo) ListByCategory(_ context.Context, year *string) ([]domain.GalleryItem, error) {
	var out []domain.GalleryItem
	for _, item := range m.items {
		if year != nil && (item.Year == nil || *item.Year != *year) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out, nil
}

func (m *memGalleryRepo) CountInCategory(_ context.Context, category domain.GalleryCategory) (int, error) {
	count := 0
	for _, item := range m.items {
		if item.Category == category {
			count++
		}
	}
	return count, nil
}

func (m *memGalleryRepo) CountByCategory(_ context.Context) (map[domain.GalleryCategory]int, error) {
	counts := make(map[domain.GalleryCategory]int)
	for _, item := range m.items {
		counts[item.Category]++
	}
	return counts, nil
}

func (m *memGalleryRepo) DistinctYears(_ context.Context) ([]string, error) {
	return distinctYears(func(yield func(string)) {
		for _, item := range m.items {
			if item.Year != nil {
				yield(*item.Year)
			}
		}
	}), nil
}

func (m *memGalleryRepo) UpdateDisplayOrders(_ context.Context, updates []repository.DisplayOrderUpdate) error {
	for _, update := range updates {
		item, ok := m.items[update.ID]
		if !ok {
			return pgx.ErrNoRows
		}
		item.DisplayOrder = update.DisplayOrder
		m.items[update.ID] = item
	}
	return nil
}

type memEventRepo struct {
	events map[int64]domain.Event
	nextID int64
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[int64]domain.Event), nextID: 1}
}

func (m *memEventRepo) Create(_ context.Context, event *domain.Event) error {
	event.ID = m.nextID
	m.nextID++
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	m.events[event.ID] = *event
	return nil
}

func (m *memEventRepo) Update(_ context.Context, event *domain.Event) error {
	if _, ok := m.events[event.ID]; !ok {
		return pgx.ErrNoRows
	}
	event.UpdatedAt = time.Now()
	m.events[event.ID] = *event
	return nil
}

func (m *memEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.events[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.events, id)
	return nil
}

func (m *memEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &event, nil
}

func (m *memEventRepo) GetBySlug(_ context.Context, slug string) (*domain.Event, error) {
	for _, event := range m.events {
		if event.Slug == slug {
			e := event
			return &e, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memEventRepo) SlugExists(_ context.Context, slug string, excludeID int64) (bool, error) {
	for _, event := range m.events {
		if event.Slug == slug && event.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memEventRepo) List(_ context.Context, limit, offset int) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(m.events))
	for _, event := range m.events {
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return paginate(out, limit, offset), nil
}

func (m *memEventRepo) ListUpcoming(_ context.Context, now time.Time, limit, offset int) ([]domain.Event, error) {
	var out []domain.Event
	for _, event := range m.events {
		if !event.StartsAt.Before(now) {
			out = append(out, event)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return paginate(out, limit, offset), nil
}

type memRegistrationRepo struct {
	regs   map[int64]domain.Registration
	nextID int64
}

func newMemRegistrationRepo() *memRegistrationRepo {
	return &memRegistrationRepo{regs: make(map[int64]domain.Registration), nextID: 1}
}

func (m *memRegistrationRepo) Create(_ context.Context, reg *domain.Registration) error {
	reg.ID = m.nextID
	m.nextID++
	reg.CreatedAt = time.Now()
	reg.UpdatedAt = reg.CreatedAt
	m.regs[reg.ID] = *reg
	return nil
}

func (m *memRegistrationRepo) Update(_ context.Context, reg *domain.Registration) error {
	if _, ok := m.regs[reg.ID]; !ok {
		return pgx.ErrNoRows
	}
	reg.UpdatedAt = time.Now()
	m.regs[reg.ID] = *reg
	return nil
}

func (m *memRegistrationRepo) GetByEventAndUser(_ context.Context, eventID, userID int64) (*domain.Registration, error) {
	for _, reg := range m.regs {
		if reg.EventID == eventID && reg.UserID == userID {
			r := reg
			return &r, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memRegistrationRepo) ListByEvent(_ context.Context, eventID int64) ([]domain.Registration, error) {
	var out []domain.Registration
	for _, reg := range m.regs {
		if reg.EventID == eventID {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRegistrationRepo) CountByEventAndStatus(_ context.Context, eventID int64, status domain.RegistrationStatus) (int, error) {
	count := 0
	for _, reg := range m.regs {
		if reg.EventID == eventID && reg.Status == status {
			count++
		}
	}
	return count, nil
}

type memSubscriberRepo struct {
	subs   map[int64]domain.Subscriber
	nextID int64
}

func newMemSubscriberRepo() *memSubscriberRepo {
	return &memSubscriberRepo{subs: make(map[int64]domain.Subscriber), nextID: 1}
}

func (m *memSubscriberRepo) Create(_ context.Context, sub *domain.Subscriber) error {
	sub.ID = m.nextID
	m.nextID++
	m.subs[sub.ID] = *sub
	return nil
}

func (m *memSubscriberRepo) Update(_ context.Context, sub *domain.Subscriber) error {
	if _, ok := m.subs[sub.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.subs[sub.ID] = *sub
	return nil
}

func (m *memSubscriberRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.subs[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.subs, id)
	return nil
}

func (m *memSubscriberRepo) GetByID(_ context.Context, id int64) (*domain.Subscriber, error) {
	sub, ok := m.subs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &sub, nil
}

func (m *memSubscriberRepo) GetByEmail(_ context.Context, email string) (*domain.Subscriber, error) {
	for _, sub := range m.subs {
		if sub.Email == email {
			s := sub
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memSubscriberRepo) List(_ context.Context, activeOnly bool, limit, offset int) ([]domain.Subscriber, error) {
	var out []domain.Subscriber
	for _, sub := range m.subs {
		if activeOnly && !sub.IsActive {
			continue
		}
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubscribedAt.After(out[j].SubscribedAt) })
	return paginate(out, limit, offset), nil
}

func (m *memSubscriberRepo) ListActive(_ context.Context) ([]domain.Subscriber, error) {
	var out []domain.Subscriber
	for _, sub := range m.subs {
		if sub.IsActive {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memSubscriberRepo) Stats(_ context.Context) (*repository.SubscriberStats, error) {
	stats := &repository.SubscriberStats{}
	for _, sub := range m.subs {
		stats.Total++
		if sub.IsActive {
			stats.Active++
		}
	}
	stats.Unsubscribed = stats.Total - stats.Active
	return stats, nil
}

// ----------------------------------------------------------------------------
// capture doubles for the event and mail pipelines
// ----------------------------------------------------------------------------

type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) byType(t events.EventType) []events.Event {
	var out []events.Event
	for _, e := range d.published {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type captureMailer struct {
	sent    []mail.SendPayload
	failFor map[string]error
}

func (m *captureMailer) EnqueueSend(_ context.Context, payload mail.SendPayload) error {
	if err, ok := m.failFor[payload.To]; ok {
		return err
	}
	m.sent = append(m.sent, payload)
	return nil
}

func (m *captureMailer) Close() error { return nil }

// ----------------------------------------------------------------------------
// shared helpers
// ----------------------------------------------------------------------------

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func distinctYears(collect func(yield func(string))) []string {
	seen := make(map[string]struct{})
	var out []string
	collect(func(year string) {
		if year == "" {
			return
		}
		if _, ok := seen[year]; ok {
			return
		}
		seen[year] = struct{}{}
		out = append(out, year)
	})
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
