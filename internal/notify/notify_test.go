package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFeed_NewestFirstAndCapped(t *testing.T) {
	feed := NewMemoryFeed(2)
	ctx := context.Background()

	feed.Notify(ctx, Warning("one", ""))
	feed.Notify(ctx, Warning("two", ""))
	feed.Notify(ctx, Error("three", ""))

	recent, err := feed.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Title)
	assert.Equal(t, "two", recent[1].Title)
}

func TestRedisFeed_StoresAndPublishes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sub := client.Subscribe(ctx, RedisChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	feed := NewRedisFeed(client, 3)
	for _, title := range []string{"a", "b", "c", "d"} {
		feed.Notify(ctx, Warning(title, "desc"))
	}

	recent, err := feed.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Title)
	assert.Equal(t, LevelWarning, recent[0].Level)

	select {
	case msg := <-sub.Channel():
		assert.Contains(t, msg.Payload, `"title":"a"`)
	case <-time.After(time.Second):
		t.Fatal("expected a published notification")
	}
}

func TestMulti(t *testing.T) {
	a, b := NewMemoryFeed(5), NewMemoryFeed(5)
	Multi{a, b, LogNotifier{}}.Notify(context.Background(), Error("boom", "details"))

	ra, _ := a.Recent(context.Background(), 1)
	rb, _ := b.Recent(context.Background(), 1)
	assert.Len(t, ra, 1)
	assert.Len(t, rb, 1)
}
