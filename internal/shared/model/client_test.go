package model

import (
	"encoding/json"
	"testing"
)

func TestClientJSONFieldNames(t *testing.T) {
	c := Client{ID: 7, ClientID: "client_a", Secret: "s3cr3t", RedirectURL: "http://url"}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	for _, key := range []string{"_id", "id", "secret", "redirectUrl"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing json key %q in %s", key, data)
		}
	}
	if _, ok := got["created_at"]; ok {
		t.Errorf("timestamps must not be serialized: %s", data)
	}
	if c.EntityID() != 7 {
		t.Errorf("EntityID() = %d, want 7", c.EntityID())
	}
}
