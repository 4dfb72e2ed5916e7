package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// CourseTextCache keeps extracted course text in redis so repeated
// generation requests skip the PDF extraction pass.
type CourseTextCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewCourseTextCache(client *redisv9.Client, ttl time.Duration) *CourseTextCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CourseTextCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *CourseTextCache) GetText(ctx context.Context, courseCode string) (string, bool, error) {
	raw, err := c.client.Get(ctx, c.textKey(courseCode)).Result()
	if err == redisv9.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get course text failed: %w", err)
	}
	return raw, true, nil
}

func (c *CourseTextCache) SetText(ctx context.Context, courseCode, text string) error {
	if err := c.client.Set(ctx, c.textKey(courseCode), text, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set course text failed: %w", err)
	}
	return nil
}

func (c *CourseTextCache) DeleteText(ctx context.Context, courseCode string) error {
	if err := c.client.Del(ctx, c.textKey(courseCode)).Err(); err != nil {
		return fmt.Errorf("redis delete course text failed: %w", err)
	}
	return nil
}

func (c *CourseTextCache) textKey(courseCode string) string {
	return fmt.Sprintf("course:text:%s", courseCode)
}
