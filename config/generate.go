package config

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// GenerateConfig writes a default dispatch config template to given filepath
func GenerateConfig(configPath string, dev bool) error {
	template := &DispatchConfig{}
	template.SetDefaults(dev)

	if isYAML(configPath) {
		b, err := yaml.Marshal(template)
		if err != nil {
			return err
		}
		return ioutil.WriteFile(configPath, b, os.ModePerm)
	}

	b, err := json.Marshal(template)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err = json.Indent(&pretty, b, "", "  "); err != nil {
		return err
	}
	return ioutil.WriteFile(configPath, append(pretty.Bytes(), '\n'), os.ModePerm)
}
