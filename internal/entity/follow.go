/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package entity

// Follow is a directed subscription edge: UserUUID receives AuthorUUID's
// posts in the followed feed. The pair is unique.
type Follow struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"`

	UserUUID string `gorm:"not null;uniqueIndex:unique_follow"`
	User     User   `gorm:"foreignKey:UserUUID;references:UUID;constraint:OnDelete:CASCADE"`

	AuthorUUID string `gorm:"not null;uniqueIndex:unique_follow;index"`
	Author     User   `gorm:"foreignKey:AuthorUUID;references:UUID;constraint:OnDelete:CASCADE"`
}
