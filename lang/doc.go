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

// Package lang implements the recursive-descent front end for rule text:
//
//	expression      = orExpr ;
//	orExpr          = andExpr , { ("||" | "OR") , andExpr } ;
//	andExpr         = condition , { ("&&" | "AND") , condition } ;
//	condition       = aggCondition | simpleCondition | "(" , expression , ")" ;
//	aggCondition    = aggType , "(" , ident , "," , timeWindow , ")" , op , threshold ;
//	simpleCondition = ident , op , threshold ;
//	aggType         = "avg" | "sum" | "max" | "min" (case-insensitive) ;
//	timeWindow      = NUMBER , ("s" | "m" | "h") (unit case-insensitive) ;
//	op              = ">" | ">=" | "<" | "<=" | "==" | "!=" ;
//	threshold       = arith ;
//
// Parsing produces an ast.Node tree. The arithmetic "threshold"
// production (arith/mulDiv/primary) is parsed by this package's own
// recursive-descent methods into arith.Term values; the arith package's
// Parse function implements the same grammar separately and is not
// called here.
package lang
