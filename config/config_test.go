package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	var path = filepath.Join(t.TempDir(), name)
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	def := New()

	custom := New()
	custom.API.Port = "9000"
	custom.API.Timeout = Duration(5 * time.Second)
	custom.Dispatch.Apps = map[string]Target{
		"shop": {App: "shop", Controller: "views", Action: "render"},
	}
	custom.Cache.Size = 10

	type args struct {
		configPath string
	}
	tests := []struct {
		name    string
		args    args
		want    DispatchConfig
		wantErr bool
	}{
		{"invalid path", args{""}, DispatchConfig{}, true},
		{"invalid file", args{"./config.go"}, DispatchConfig{}, true},
		{"bad duration", args{writeFile(t, "bad.json", `{"api":{"timeout":"soon"}}`)}, DispatchConfig{}, true},
		{"absolute template root",
			args{writeFile(t, "root.yaml", "dispatch:\n  template_root: /srv/apps\n")},
			DispatchConfig{}, true},
		{"empty json", args{writeFile(t, "empty.json", `{}`)}, def, false},
		{"custom json",
			args{writeFile(t, "custom.json", `{
				"api": {"port": "9000", "timeout": "5s"},
				"dispatch": {"apps": {"shop": {"app": "shop", "controller": "views", "action": "render"}}},
				"cache": {"size": 10}
			}`)},
			custom, false},
		{"custom yaml",
			args{writeFile(t, "custom.yaml", `
api:
  port: "9000"
  timeout: 5s
dispatch:
  apps:
    shop:
      app: shop
      controller: views
      action: render
cache:
  size: 10
`)},
			custom, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(tt.args.configPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	var cfg DispatchConfig
	cfg.SetDefaults(true)
	if !cfg.Views.Reload {
		t.Error("expected views to reload in dev mode")
	}
	if cfg.Dispatch.Default.App != "demo01" || cfg.API.Timeout.Std() != 30*time.Second {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}
