// seehuhn.de/go/pcell - parametric mask cells for superconducting circuits
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package pcell generates parametric mask cells for superconducting
// circuits.
//
// A generator computes polygon geometry from a set of named parameters
// and writes it into the layers of a [layout.Cell], together with named
// reference points and ports. The generators live in the sub-packages
// element, teststructure and squid; package library resolves generator
// names to implementations. All geometry is computed with the integer
// region algebra of package region.
//
// [layout.Cell]: seehuhn.de/go/pcell/layout.Cell
package pcell
