/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package condstream compiles textual boolean rules over named numeric
// metric streams into a running verdict stream.
//
// A rule such as
//
//	avg(cpu, 1m) > 70 || avg(mem, 1m) > 80
//
// is parsed once (package lang) into an expression tree (package ast),
// validated, and compiled into a pipeline of routers (package router),
// tumbling-window partitioners (package window) and aggregation/logical
// evaluators (package verdict). Engine owns the one sample source and
// the one per-metric router shared by every rule built against it; Rule
// is the compiled, running pipeline for one expression.
//
// Example:
//
//	eng := condstream.New()
//	eng.Start(source)
//	rule, err := eng.Build(context.Background(), "avg(cpu, 1m) > 70 || avg(mem, 1m) > 80")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rule.Close()
//	for res := range rule.C() {
//		v, err := res.Get()
//		if err != nil {
//			log.Printf("rule failed: %v", err)
//			break
//		}
//		fmt.Println(v.Value, v.Period)
//	}
package condstream
