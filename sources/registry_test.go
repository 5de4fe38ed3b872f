package sources

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name              string
		wantErr           bool
		wantUnimplemented bool
	}{
		{name: BuzzFeedName},
		{name: ClickHoleName},
		{name: UpworthyName, wantErr: true, wantUnimplemented: true},
		{name: UproxxName, wantErr: true, wantUnimplemented: true},
		{name: GoogleNewsName, wantErr: true, wantUnimplemented: true},
		{name: NewYorkerName, wantErr: true, wantUnimplemented: true},
		{name: "myspace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := New(tt.name, &stubFetcher{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if tt.wantErr {
				var unimplemented *UnimplementedSourceError
				if got := errors.As(err, &unimplemented); got != tt.wantUnimplemented {
					t.Errorf("errors.As(UnimplementedSourceError) = %v, want %v (err: %v)", got, tt.wantUnimplemented, err)
				}
				return
			}
			if src == nil {
				t.Fatal("New() returned nil source without error")
			}
			if src.Name() == "" || src.NativeIDField() == "" || len(src.Tags()) == 0 {
				t.Errorf("source metadata incomplete: name=%q idField=%q tags=%v", src.Name(), src.NativeIDField(), src.Tags())
			}
		})
	}
}
