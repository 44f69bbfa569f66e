package mysql

// -----------------------------------------------------------------------------
// CATALOG UPSERTS (seeder write paths)
// -----------------------------------------------------------------------------

const upsertChainSQL = `
INSERT INTO hotel_chains (id, name, hq_address)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  name       = VALUES(name),
  hq_address = VALUES(hq_address)
`

const upsertHotelSQL = `
INSERT INTO hotels (id, chain_id, name, address, stars, zone, room_count)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  chain_id   = VALUES(chain_id),
  name       = VALUES(name),
  address    = VALUES(address),
  stars      = VALUES(stars),
  zone       = VALUES(zone),
  room_count = VALUES(room_count)
`

const upsertRoomSQL = `
INSERT INTO rooms (id, hotel_id, room_number, price, capacity, view_type, extensible, area, damaged)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  hotel_id    = VALUES(hotel_id),
  room_number = VALUES(room_number),
  price       = VALUES(price),
  capacity    = VALUES(capacity),
  view_type   = VALUES(view_type),
  extensible  = VALUES(extensible),
  area        = VALUES(area),
  damaged     = VALUES(damaged)
`

const upsertClientSQL = `
INSERT INTO clients (ssn, full_name)
VALUES (?, ?)
ON DUPLICATE KEY UPDATE full_name = VALUES(full_name)
`

const upsertEmployeeSQL = `
INSERT INTO employees (ssn, full_name, role)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  full_name = VALUES(full_name),
  role      = VALUES(role)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const listHotelsSQL = `
SELECT h.id, c.name, h.name, h.address, h.stars, h.zone, h.room_count
FROM hotels h
JOIN hotel_chains c ON c.id = h.chain_id
ORDER BY h.id
`

// Availability: a room qualifies iff no rental (and, when reservation holds
// are enabled, no active reservation) overlaps the half-open query range:
// existing.start < queryEnd AND existing.end > queryStart.
// Optional filter predicates are appended before the ORDER BY.
const availableRoomsBaseSQL = `
SELECT
  r.id, r.hotel_id, r.room_number, r.price, r.capacity, r.view_type,
  r.extensible, r.area, r.damaged,
  h.address, h.stars, h.zone,
  c.name
FROM rooms r
JOIN hotels h ON h.id = r.hotel_id
JOIN hotel_chains c ON c.id = h.chain_id
WHERE NOT EXISTS (
  SELECT 1 FROM rentals rl
  WHERE rl.room_id = r.id AND rl.start_date < ? AND rl.end_date > ?
)`

const availableRoomsHoldSQL = `
AND NOT EXISTS (
  SELECT 1 FROM reservations rs
  WHERE rs.room_id = r.id AND rs.status = 'active'
    AND rs.start_date < ? AND rs.end_date > ?
)`

const availableRoomsOrderSQL = `
ORDER BY r.hotel_id, r.room_number`

const listReservationsByClientSQL = `
SELECT id, client_ssn, room_id, start_date, end_date, status
FROM reservations
WHERE client_ssn = ?
ORDER BY id
`

// -----------------------------------------------------------------------------
// BOOKING TRANSACTIONS
// -----------------------------------------------------------------------------

// Locking the room row serializes concurrent check+write on the same room.
const lockRoomSQL = `SELECT id FROM rooms WHERE id = ? FOR UPDATE`

const rentalConflictSQL = `
SELECT EXISTS(
  SELECT 1 FROM rentals
  WHERE room_id = ? AND start_date < ? AND end_date > ?
)`

const reservationConflictSQL = `
SELECT EXISTS(
  SELECT 1 FROM reservations
  WHERE room_id = ? AND status = 'active' AND start_date < ? AND end_date > ?
)`

const insertReservationSQL = `
INSERT INTO reservations (client_ssn, room_id, start_date, end_date, status)
VALUES (?, ?, ?, ?, 'active')
`

const cancelReservationSQL = `
UPDATE reservations SET status = 'cancelled'
WHERE id = ? AND status = 'active'
`

const insertPaymentSQL = `
INSERT INTO payments (amount, issued_at) VALUES (?, ?)
`

const insertRentalSQL = `
INSERT INTO rentals (client_ssn, employee_ssn, room_id, payment_id, start_date, end_date)
VALUES (?, ?, ?, ?, ?, ?)
`

// Only an active reservation is convertible; the status predicate makes a
// second conversion find no row.
const activeReservationForUpdateSQL = `
SELECT id, client_ssn, room_id, start_date, end_date
FROM reservations
WHERE id = ? AND status = 'active'
FOR UPDATE
`

const markConvertedSQL = `
UPDATE reservations SET status = 'converted' WHERE id = ?
`
