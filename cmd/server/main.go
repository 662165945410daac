/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/wso2/entity-tokenization-service/internal/system/config"
	"github.com/wso2/entity-tokenization-service/internal/system/constants"
	"github.com/wso2/entity-tokenization-service/internal/system/log"
	"github.com/wso2/entity-tokenization-service/internal/system/managers"
	"github.com/wso2/entity-tokenization-service/internal/system/metrics"
	"github.com/wso2/entity-tokenization-service/internal/system/workers"
)

func main() {
	etsHome := resolveETSHome()
	const configFile = "/repository/conf/deployment.yaml"

	envFiles, err := filepath.Glob("config/*.env")
	if err != nil || len(envFiles) == 0 {
		fmt.Println("No .env files found in config directory. ", err)
	}
	_ = godotenv.Load(envFiles...)

	// Load the configuration file
	etsConfig, err := config.LoadConfig(etsHome, configFile)
	if err != nil {
		fmt.Println("Failed to load etsConfig. ", err)
		os.Exit(1)
	}

	// Initialize runtime configurations
	if err := config.InitializeETSRuntime(etsHome, etsConfig); err != nil {
		fmt.Println("Failed to initialize ets runtime.", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := log.Init(etsConfig.Log.LogLevel); err != nil {
		fmt.Println("Failed to initialize logger.", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	// Initialize database
	initDatabaseFromConfig(etsConfig)

	// Initialize event worker
	workers.StartEventWorker()

	serverAddr := fmt.Sprintf("%s:%d", etsConfig.Addr.Host, etsConfig.Addr.Port)
	mux := enableCORS(initMultiplexer(), etsConfig.Auth.CORSAllowedOrigins)
	logger.Info(fmt.Sprintf("WSO2 ETS starting in: %v", serverAddr))
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Error("Failed to start listener.", log.Error(err))
		os.Exit(1)
	}

	logger.Info(fmt.Sprintf("WSO2 ETS started in: %v", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Error("Failed to serve requests.", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	// Register the services.
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Error("Failed to register the services.", log.Error(err))
	}

	mux.Handle("/metrics", metrics.Handler())

	return mux
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed["*"] {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// resolveETSHome parses flags and determines the ETS home directory.
func resolveETSHome() string {
	etsHomeFlag := flag.String("etsHome", "", "Path to entity tokenization service home directory")

	if !flag.Parsed() {
		flag.Parse()
	}

	if *etsHomeFlag != "" {
		fmt.Printf("Using %s from command line argument\n", *etsHomeFlag)
		return *etsHomeFlag
	}

	// Fallback to environment variable
	if envHome := os.Getenv("ETS_HOME"); envHome != "" {
		fmt.Printf("Using ETS_HOME from environment: %s\n", envHome)
		return envHome
	}

	// Fallback to working directory
	dir, err := os.Getwd()
	if err != nil {
		fmt.Println("Failed to get current working directory", err)
		os.Exit(1)
	}
	return dir
}

func initDatabaseFromConfig(config *config.Config) {

	logger := log.GetLogger()
	host := config.DataSource.Hostname
	port := config.DataSource.Port
	user := config.DataSource.Username
	password := config.DataSource.Password
	dbname := config.DataSource.Name

	if host == "" || user == "" || password == "" || dbname == "" {
		logger.Error("One or more Database configuration values are missing.")
	}

	logger.Info(fmt.Sprintf("Database initialized successfully for configurations - db name:%s, db host:%s, "+
		"db port:%d", dbname, host, port))
}
