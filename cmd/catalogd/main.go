// Copyright 2022 OrcaDB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/orcadb/orca/pkg/bootstrap"
	"github.com/orcadb/orca/pkg/catalog"
	"github.com/orcadb/orca/pkg/common/oerr"
	"github.com/orcadb/orca/pkg/config"
	"github.com/orcadb/orca/pkg/logutil"
)

var configFile = flag.String("config", "", "path of the catalogd configuration file")

func main() {
	flag.Parse()
	if *configFile == "" {
		fmt.Printf("Usage: %s -config configFile\n", os.Args[0])
		os.Exit(-1)
	}
	ctx := context.Background()

	var params config.CatalogParameters
	if err := config.LoadConfigFromFile(ctx, *configFile, &params); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(-1)
	}
	logutil.SetupLogger(&params.Log)

	if err := os.MkdirAll(params.StorePath, 0755); err != nil {
		logutil.Fatal("create store path", zap.Error(err))
	}

	c := catalog.New()
	probe := bootstrap.NewService(c)
	if err := probe.Start(params.ProbeAddress); err != nil {
		logutil.Fatal("start bootstrap probe", zap.Error(err))
	}

	// the probe answers "unfinished" until replay is done
	imagePath := params.ImagePath()
	err := c.LoadImage(ctx, imagePath)
	switch {
	case err == nil:
	case oerr.IsErrorCode(err, oerr.ErrFileNotFound):
		logutil.Info("no catalog image, bootstrapping fresh catalog",
			zap.String("path", imagePath))
		if err := c.Bootstrap(ctx); err != nil {
			logutil.Fatal("bootstrap catalog", zap.Error(err))
		}
		if err := c.SaveImage(ctx, imagePath); err != nil {
			logutil.Fatal("save initial catalog image", zap.Error(err))
		}
	default:
		logutil.Fatal("replay catalog image", zap.Error(err))
	}

	waitSignal()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := probe.Close(shutdownCtx); err != nil {
		logutil.Error("close bootstrap probe", zap.Error(err))
	}
	fmt.Println("\rBye!")
}

func waitSignal() {
	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, syscall.SIGTERM, syscall.SIGINT)
	<-sigchan
}
