package main

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/vkboot/core"
)

func main() {
	cfg, err := core.LoadConfiguration()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	if err := run(cfg.Instance); err != nil {
		log.Fatal(err)
	}
}

func run(cfg core.InstanceConfiguration) error {
	coreInstance, err := core.NewVulkanInstance(core.NewApplicationInfo(cfg.ApplicationName), nil, cfg, log.StandardLogger())
	if err != nil {
		return err
	}
	defer coreInstance.Destroy()

	info, err := coreInstance.PhysicalDevicesInfo()
	if err != nil {
		return err
	}

	bytes, err := json.Marshal(info)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", bytes)
	return nil
}
