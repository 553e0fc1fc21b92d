package celebrityapp

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dbadapter "celebnetwork/internal/adapters/database"
	celebrityEntity "celebnetwork/internal/core/celebrity"
	"celebnetwork/internal/core/errs"
	userEntity "celebnetwork/internal/core/user"
	celebrityPort "celebnetwork/internal/ports/celebrity"
	"celebnetwork/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryCache پیاده‌سازی ساده‌ی FeaturedCache برای تست
type memoryCache struct {
	mu          sync.Mutex
	entries     map[string][]*celebrityPort.CelebrityDTO
	gets, hits  int
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]*celebrityPort.CelebrityDTO{}}
}

func cacheKey(limit int, verifiedOnly bool) string {
	return fmt.Sprintf("%t:%d", verifiedOnly, limit)
}

func (m *memoryCache) Get(_ context.Context, limit int, verifiedOnly bool) ([]*celebrityPort.CelebrityDTO, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	list, ok := m.entries[cacheKey(limit, verifiedOnly)]
	if ok {
		m.hits++
	}
	return list, ok
}

func (m *memoryCache) Set(_ context.Context, limit int, verifiedOnly bool, list []*celebrityPort.CelebrityDTO) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[cacheKey(limit, verifiedOnly)] = list
	return nil
}

func (m *memoryCache) Invalidate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string][]*celebrityPort.CelebrityDTO{}
	m.invalidated++
	return nil
}

func newService(t *testing.T) (*CelebrityService, *memoryCache, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	cache := newMemoryCache()
	svc := NewCelebrityService(
		dbadapter.NewCelebrityRepositoryDatabase(db),
		dbadapter.NewUserRepositoryDatabase(db),
		dbadapter.NewFollowingRepositoryDatabase(db),
		dbadapter.NewViewCounterDatabase(db),
		cache,
	)
	return svc, cache, db
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 6, ClampLimit(0, 6, 50))
	assert.Equal(t, 6, ClampLimit(-3, 6, 50))
	assert.Equal(t, 10, ClampLimit(10, 6, 50))
	assert.Equal(t, 50, ClampLimit(500, 6, 50))
}

func TestFeaturedUsesCache(t *testing.T) {
	svc, cache, db := newService(t)
	ctx := context.Background()

	testutil.SeedCelebrity(t, db, testutil.CelebritySeed{Email: "b@x.com", FirstName: "Bea", LastName: "Star", StageName: "B Star", Verified: true, FollowersCount: 2})
	testutil.SeedCelebrity(t, db, testutil.CelebritySeed{Email: "c@x.com", FirstName: "Cy", LastName: "New", StageName: "Newbie", Verified: false, FollowersCount: 9})

	list, err := svc.Featured(ctx, 0, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B Star", list[0].StageName)
	assert.Equal(t, 0, cache.hits)

	list, err = svc.Featured(ctx, 0, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, cache.hits)

	all, err := svc.Featured(ctx, 0, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Newbie", all[0].StageName)
}

func TestGetRecordsView(t *testing.T) {
	svc, _, db := newService(t)
	ctx := context.Background()

	_, c := testutil.SeedCelebrity(t, db, testutil.CelebritySeed{Email: "b@x.com", FirstName: "Bea", LastName: "Star", StageName: "B Star"})

	first, err := svc.Get(ctx, c.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.ProfileViews)
	got, err := svc.Get(ctx, c.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.ProfileViews)
	assert.Equal(t, "Bea", got.FirstName)

	// پاسخ با مقدار ذخیره‌شده یکی است
	var stored celebrityEntity.Celebrity
	require.NoError(t, db.Where("id = ?", c.ID).First(&stored).Error)
	assert.Equal(t, stored.ProfileViews, got.ProfileViews)

	_, err = svc.Get(ctx, uuid.Must(uuid.NewV4()).String())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUpdateOwnerOrAdminOnly(t *testing.T) {
	svc, cache, db := newService(t)
	ctx := context.Background()

	owner, c := testutil.SeedCelebrity(t, db, testutil.CelebritySeed{Email: "b@x.com", FirstName: "Bea", LastName: "Star", StageName: "B Star"})
	other, _ := testutil.SeedCelebrity(t, db, testutil.CelebritySeed{Email: "o@x.com", FirstName: "Oz", LastName: "Other", StageName: "Other"})
	admin := testutil.SeedAdmin(t, db, "root@x.com")

	name := "Bea Superstar"
	_, err := svc.Update(ctx, userEntity.Actor{UserID: other.ID.String(), Role: userEntity.RoleCelebrity}, c.ID.String(),
		celebrityPort.UpdateCelebrityInput{StageName: &name})
	assert.ErrorIs(t, err, errs.ErrForbidden)

	updated, err := svc.Update(ctx, userEntity.Actor{UserID: owner.ID.String(), Role: userEntity.RoleCelebrity}, c.ID.String(),
		celebrityPort.UpdateCelebrityInput{StageName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bea Superstar", updated.StageName)
	assert.Equal(t, 1, cache.invalidated)

	industries := []string{"Film"}
	updated, err = svc.Update(ctx, userEntity.Actor{UserID: admin.ID.String(), Role: userEntity.RoleAdmin}, c.ID.String(),
		celebrityPort.UpdateCelebrityInput{Industries: &industries})
	require.NoError(t, err)
	assert.Equal(t, []string{"Film"}, updated.Industries)
	assert.Equal(t, "Bea Superstar", updated.StageName)
}

func TestUpdateRejectsBlankStageName(t *testing.T) {
	svc, _, db := newService(t)
	ctx := context.Background()

	owner, c := testutil.SeedCelebrity(t, db, testutil.CelebritySeed{Email: "b@x.com", FirstName: "Bea", LastName: "Star", StageName: "B Star"})
	actor := userEntity.Actor{UserID: owner.ID.String(), Role: userEntity.RoleCelebrity}

	blank := "   "
	_, err := svc.Update(ctx, actor, c.ID.String(), celebrityPort.UpdateCelebrityInput{StageName: &blank})
	assert.ErrorIs(t, err, errs.ErrValidation)

	var stored celebrityEntity.Celebrity
	require.NoError(t, db.Where("id = ?", c.ID).First(&stored).Error)
	assert.Equal(t, "B Star", stored.StageName)

	padded := "  Bea B  "
	updated, err := svc.Update(ctx, actor, c.ID.String(), celebrityPort.UpdateCelebrityInput{StageName: &padded})
	require.NoError(t, err)
	assert.Equal(t, "Bea B", updated.StageName)
}

func TestSetVerifiedChecksLiveRole(t *testing.T) {
	svc, cache, db := newService(t)
	ctx := context.Background()

	owner, c := testutil.SeedCelebrity(t, db, testutil.CelebritySeed{Email: "b@x.com", FirstName: "Bea", LastName: "Star", StageName: "B Star"})
	admin := testutil.SeedAdmin(t, db, "root@x.com")

	// نقش ادمین در توکن کافی نیست؛ رکورد کاربر سلبریتی است
	_, err := svc.SetVerified(ctx, userEntity.Actor{UserID: owner.ID.String(), Role: userEntity.RoleAdmin}, c.ID.String(), true)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	got, err := svc.SetVerified(ctx, userEntity.Actor{UserID: admin.ID.String(), Role: userEntity.RoleAdmin}, c.ID.String(), true)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Equal(t, 1, cache.invalidated)

	got, err = svc.SetVerified(ctx, userEntity.Actor{UserID: admin.ID.String(), Role: userEntity.RoleAdmin}, c.ID.String(), false)
	require.NoError(t, err)
	assert.False(t, got.IsVerified)
}

func TestFollowersList(t *testing.T) {
	svc, _, db := newService(t)
	ctx := context.Background()
	follows := dbadapter.NewFollowingRepositoryDatabase(db)

	_, c := testutil.SeedCelebrity(t, db, testutil.CelebritySeed{Email: "b@x.com", FirstName: "Bea", LastName: "Star", StageName: "B Star"})
	_, f := testutil.SeedFan(t, db, "a@x.com", "Ann", "Fan")
	_, _, err := follows.Follow(ctx, f.ID.String(), c.ID.String())
	require.NoError(t, err)

	fans, err := svc.Followers(ctx, c.ID.String(), 0, 0)
	require.NoError(t, err)
	require.Len(t, fans, 1)
	assert.Equal(t, "Ann", fans[0].FirstName)

	_, err = svc.Followers(ctx, uuid.Must(uuid.NewV4()).String(), 0, 0)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
