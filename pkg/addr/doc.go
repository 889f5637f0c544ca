// Copyright 2026 The topogen Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package addr contains identifier types for routing protocols.

AS is a 32-bit BGP autonomous system number. It is formatted in asplain
notation (RFC 5396) and parsed from either asplain ("65000") or asdot
("1.10") notation.

DottedQuad is a 32-bit identifier written like an IPv4 address. OSPF area IDs
and OSPF/BGP router IDs both use it.
*/
package addr
