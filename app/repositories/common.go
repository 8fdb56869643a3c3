package repositories

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// PostKeyPrefix prefixes every post key
	PostKeyPrefix = "post:"

	// post ids are zero padded so keys iterate in id order
	postKeyWidth = 10
)

// postKey builds the badger key of a post
func postKey(id int) []byte {
	return []byte(fmt.Sprintf("%s%0*d", PostKeyPrefix, postKeyWidth, id))
}

// postIDFromKey parses the id back out of a post key
func postIDFromKey(key []byte) (int, error) {
	s := string(key)
	if !strings.HasPrefix(s, PostKeyPrefix) {
		return 0, fmt.Errorf("not a post key: %q", s)
	}
	id, err := strconv.Atoi(strings.TrimPrefix(s, PostKeyPrefix))
	if err != nil {
		return 0, fmt.Errorf("invalid post key %q: %w", s, err)
	}
	return id, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
