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

// Package arith implements the dynamic-threshold arithmetic
// sub-language: constants, variables, and the four basic operators with
// standard precedence and left associativity.
//
//	arith   = mulDiv , { ("+" | "-") , mulDiv } ;
//	mulDiv  = primary , { ("*" | "/") , primary } ;
//	primary = NUMBER | ident | "(" , arith , ")" ;
//
// A parsed Term is evaluated against a Resolver, a read-only name to
// number mapping, at each comparison time.
package arith
