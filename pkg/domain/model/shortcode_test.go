package model_test

import (
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gramfetch/pkg/domain/model"
	"github.com/m-mizutani/gramfetch/pkg/domain/types"
)

func TestExtractShortcode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Shortcode
		wantErr bool
	}{
		{
			name:  "Post URL",
			input: "https://www.instagram.com/p/C6vX4w1yA3e/",
			want:  "C6vX4w1yA3e",
		},
		{
			name:  "Reel URL",
			input: "https://www.instagram.com/reel/DEf-5gH_ij2/",
			want:  "DEf-5gH_ij2",
		},
		{
			name:  "Post URL without scheme host match",
			input: "instagram.com/p/abc123",
			want:  "abc123",
		},
		{
			name:  "Bare post path",
			input: "/p/xyz_78-9",
			want:  "xyz_78-9",
		},
		{
			name:  "Bare reel path",
			input: "/reel/QQQ111",
			want:  "QQQ111",
		},
		{
			name:  "URL with query parameters",
			input: "https://www.instagram.com/p/C6vX4w1yA3e/?igsh=abcdef",
			want:  "C6vX4w1yA3e",
		},
		{
			name:  "Pasted share text containing URL",
			input: "Check this out! https://www.instagram.com/reel/Br0wn_F0x/ so good",
			want:  "Br0wn_F0x",
		},
		{
			name:    "Profile URL has no shortcode",
			input:   "https://www.instagram.com/some_user/",
			wantErr: true,
		},
		{
			name:    "Unrelated URL",
			input:   "https://example.com/watch?v=abc",
			wantErr: true,
		},
		{
			name:    "Empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ExtractShortcode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractShortcode() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if !goerr.HasTag(err, types.TagBadRequest) {
					t.Errorf("error should carry the bad_request tag: %v", err)
				}
				return
			}

			if got != tt.want {
				t.Errorf("ExtractShortcode() = %v, want %v", got, tt.want)
			}
		})
	}
}
