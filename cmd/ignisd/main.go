// main.go: ignisd operator CLI
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// ignisd is a small operator-facing binary around the ignis logger: it
// exists so the core library can be exercised, tuned, and benchmarked
// without writing a throwaway Go program first.
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/agilira/argus"
	flashflags "github.com/agilira/flash-flags"
	"github.com/agilira/ignis"
)

func main() {
	fs := flashflags.New("ignisd")
	dir := fs.String("dir", "/tmp/log/", "log directory")
	file := fs.String("file", "app", "log file base name")
	rollMB := fs.Int("roll-mb", 8, "roll size in megabytes")
	micros := fs.Bool("micros", false, "include microseconds in timestamps")
	gmtOffset := fs.Bool("gmt-offset", false, "include UTC offset in timestamps")
	console := fs.Bool("console", true, "mirror output to stdout")
	configPath := fs.String("config", "", "optional config file to watch; changes are logged")
	bench := fs.Bool("bench", false, "run the submit-throughput benchmark instead of serving")
	benchThreads := fs.Int("bench-threads", 1, "number of concurrent producer goroutines for -bench")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "ignisd:", err)
		os.Exit(2)
	}

	opts := []ignis.Option{}
	if micros.Value() {
		opts = append(opts, ignis.WithMicros())
	}
	if gmtOffset.Value() {
		opts = append(opts, ignis.WithGMTOffset())
	}
	if console.Value() {
		opts = append(opts, ignis.WithConsoleOut())
	}
	opts = append(opts, ignis.WithErrorCallback(func(err error) {
		fmt.Fprintln(os.Stderr, "ignisd: writer error:", err)
	}))

	if err := ignis.Init(dir.Value(), file.Value(), rollMB.Value(), opts...); err != nil {
		fmt.Fprintln(os.Stderr, "ignisd: init failed:", err)
		os.Exit(1)
	}
	defer ignis.Close()

	if cfgPath := configPath.Value(); cfgPath != "" {
		stopWatch := watchConfig(cfgPath)
		defer stopWatch()
	}

	if bench.Value() {
		runBenchmark(benchThreads.Value())
		return
	}

	ignis.Info().Lit("ignisd ready").Commit()
	select {}
}

// watchConfig polls the given file for changes via argus and logs
// whenever it is touched. ignisd has nothing dynamic to reconfigure
// beyond what Init already fixed at startup, so the watch exists
// primarily to demonstrate the wiring an operator would extend.
func watchConfig(path string) func() {
	watcher := argus.New(argus.Config{
		PollInterval: 2 * time.Second,
	})
	_ = watcher.Watch(path, func(event argus.ChangeEvent) {
		ignis.Info().Lit("config changed: ").Str(event.Path).Commit()
	})
	watcher.Start()
	return func() { watcher.Stop() }
}

// runBenchmark reproduces the original's 100,000-line-per-goroutine
// throughput benchmark: each worker logs a fixed pattern of mixed field
// types, and the harness reports average nanoseconds per submitted line.
func runBenchmark(threads int) {
	const linesPerThread = 100000

	var wg sync.WaitGroup
	start := time.Now()

	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < linesPerThread; i++ {
				ignis.Info().
					Lit("Logging-").Int32(int32(i)).
					Lit("-double-").Float64(-99.876).
					Lit("-uint64-").Uint64(uint64(i)).
					Commit()
			}
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	total := int64(threads * linesPerThread)
	fmt.Printf("threads: %d\n", threads)
	fmt.Printf("total lines: %d\n", total)
	fmt.Printf("elapsed: %s\n", elapsed)
	fmt.Printf("avg ns/line: %d\n", elapsed.Nanoseconds()/total)
}
