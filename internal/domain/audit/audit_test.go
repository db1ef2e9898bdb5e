package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"videorental/internal/pkg/jwt"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:audit_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Entry{}))
	return db
}

type capturePublisher struct {
	entries []*Entry
}

func (p *capturePublisher) Publish(e *Entry) { p.entries = append(p.entries, e) }

func TestRecorder_PersistsWithOriginAndExpiry(t *testing.T) {
	db := setupTestDB(t)
	feed := &capturePublisher{}
	rec := NewRecorder(NewRepository(db), feed)
	fixed := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return fixed }

	ctx := WithOrigin(context.Background(), Origin{IP: "10.0.0.7", UserAgent: "till/1.0"})
	rec.Record(ctx, Event{
		EmployeeID: 3,
		Type:       TypeRentalCreate,
		Action:     "Issued rental",
		EntityType: EntityRental,
		EntityID:   41,
		Details:    map[string]any{"days": 3},
	})

	var stored []Entry
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 1)
	e := stored[0]
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", e.ID.String())
	assert.Equal(t, "10.0.0.7", e.IP)
	assert.Equal(t, "till/1.0", e.UserAgent)
	assert.Equal(t, int64(41), e.EntityID)
	assert.True(t, e.ExpiresAt.Equal(fixed.Add(Retention)))
	days, ok := e.Details["days"].(json.Number)
	require.True(t, ok, "details decode numbers as json.Number")
	n, err := days.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.Len(t, feed.entries, 1)
	assert.Equal(t, TypeRentalCreate, feed.entries[0].Type)
}

func TestRecorder_SwallowsWriteFailures(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&Entry{}))
	feed := &capturePublisher{}
	rec := NewRecorder(NewRepository(db), feed)

	assert.NotPanics(t, func() {
		rec.Record(context.Background(), Event{EmployeeID: 1, Type: TypeLogin, Action: "Login"})
	})
	assert.Empty(t, feed.entries)
}

func TestOriginFrom_Default(t *testing.T) {
	o := OriginFrom(context.Background())
	assert.Equal(t, "unknown", o.IP)
	assert.Equal(t, "unknown", o.UserAgent)
}

func TestService_ListScopesCashiers(t *testing.T) {
	db := setupTestDB(t)
	rec := NewRecorder(NewRepository(db), nil)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	rec.Record(ctx, Event{EmployeeID: 1, Type: TypeLogin, Action: "Login"})
	rec.Record(ctx, Event{EmployeeID: 2, Type: TypeLogin, Action: "Login"})
	rec.Record(ctx, Event{EmployeeID: 2, Type: TypeClientCreate, Action: "Created client"})

	all, total, err := svc.List(ctx, 1, true, Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	filtered, total, err := svc.List(ctx, 1, true, Filter{EmployeeID: 2, Type: TypeLogin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, filtered, 1)

	own, total, err := svc.List(ctx, 1, false, Filter{EmployeeID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, own, 1)
	assert.Equal(t, int64(1), own[0].EmployeeID)
}

func TestService_LoginHistoryLimitedToTen(t *testing.T) {
	db := setupTestDB(t)
	rec := NewRecorder(NewRepository(db), nil)
	svc := NewService(NewRepository(db))
	ctx := WithOrigin(context.Background(), Origin{IP: "127.0.0.1", UserAgent: "test"})

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		rec.now = func() time.Time { return at }
		rec.Record(ctx, Event{EmployeeID: 5, Type: TypeLogin, Action: "Login"})
	}
	rec.Record(ctx, Event{EmployeeID: 5, Type: TypeRentalCreate, Action: "Issued rental"})

	history, err := svc.LoginHistory(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history, 10)
	assert.True(t, history[0].Timestamp.Equal(base.Add(11*time.Hour)))
	assert.Equal(t, "127.0.0.1", history[0].IP)
}

func TestService_PurgeRemovesExpired(t *testing.T) {
	db := setupTestDB(t)
	rec := NewRecorder(NewRepository(db), nil)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return now.Add(-Retention - time.Hour) }
	rec.Record(ctx, Event{EmployeeID: 1, Type: TypeLogin, Action: "old"})
	rec.now = func() time.Time { return now.Add(-time.Hour) }
	rec.Record(ctx, Event{EmployeeID: 1, Type: TypeLogin, Action: "recent"})

	svc.now = func() time.Time { return now }
	purged, err := svc.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var left []Entry
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "recent", left[0].Action)
}

func TestHub_PublishRespectsScope(t *testing.T) {
	hub := NewHub()
	admin := &subscriber{employeeID: 1, admin: true, send: make(chan []byte, 4)}
	cashier := &subscriber{employeeID: 2, send: make(chan []byte, 4)}
	hub.register(admin)
	hub.register(cashier)

	hub.Publish(&Entry{EmployeeID: 3, Type: TypeLogin})
	hub.Publish(&Entry{EmployeeID: 2, Type: TypeRentalCreate})

	assert.Len(t, admin.send, 2)
	require.Len(t, cashier.send, 1)

	var ev FeedEvent
	require.NoError(t, json.Unmarshal(<-cashier.send, &ev))
	assert.Equal(t, EventActivity, ev.Type)
	assert.Equal(t, TypeRentalCreate, ev.Payload.Type)

	hub.unregister(cashier)
	assert.Equal(t, 1, hub.Subscribers())
}

func TestFeed_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, NewHub(), jwt.New("secret", time.Hour))
	r := gin.New()
	RegisterFeedRoutes(r, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ws/activity", nil))
	assert.Equal(t, 401, w.Code)
}

func TestFeed_StreamsEntries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.New("secret", time.Hour)
	hub := NewHub()
	r := gin.New()
	RegisterFeedRoutes(r, NewHandler(nil, hub, jwtService))

	srv := httptest.NewServer(r)
	defer srv.Close()

	token, err := jwtService.Issue(9, "cashier")
	require.NoError(t, err)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/activity?token=" + token

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(&Entry{EmployeeID: 8, Type: TypeLogin, Action: "someone else"})
	hub.Publish(&Entry{EmployeeID: 9, Type: TypeRentalReturn, Action: "Returned rental"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev FeedEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "Returned rental", ev.Payload.Action)
}
