package sqlinline

const QInsertDonor = `--sql d4c725c8-2f06-4d1b-ba68-9c5e0c754dc2
insert into donors (id, name, blood_group, phone, province, district, municipality)
values ($1, $2, $3, $4, $5, $6, $7);
`

const QGetDonorByID = `--sql b5cbf2be-7309-4bc2-be5c-cb6d7924e1ae
select id, name, blood_group, phone, province, district, municipality, created_at
from donors
where id = $1;
`

const QUpdateDonor = `--sql 269ba2fa-c87b-4755-adc1-f34e1f0c279b
update donors
set name = $2, blood_group = $3, phone = $4, province = $5, district = $6, municipality = $7
where id = $1;
`

const QDeleteDonor = `--sql cf748438-992e-4b0d-aa68-26eb72cf0012
delete from donors where id = $1;
`

// QListDonorsBase is the prefix of the filtered donor listing; the repository
// appends the WHERE clause and ordering it builds from the cohort filter.
const QListDonorsBase = `--sql 9fa0f99b-7b3f-48fb-96f0-eaf4c877e2d2
select id, name, blood_group, phone, province, district, municipality, created_at
from donors
`

const QListDonorsWithDonationDates = `--sql 5fe2fe48-b279-4bfe-9d2f-221985ee6a33
select d.id, d.name, d.blood_group, d.phone, d.province, d.district, d.municipality, d.created_at,
       dn.donation_date
from donors d
left join donations dn on dn.donor_id = d.id
order by d.name asc;
`

// QDistinctDonorValues is a format template; the column name is interpolated
// from a whitelist before execution.
const QDistinctDonorValues = `--sql f20fe119-cdba-4d6b-8b27-29e8e1252f66
select distinct %s from donors where %s <> '' order by %s asc;
`

const QCountDonors = `--sql 549ec475-d062-4b38-a778-91d86ad541bd
select count(*) from donors;
`

const QListRecentDonors = `--sql 487ba39f-de82-40da-969d-df3c4617fb80
select id, name, blood_group, phone, province, district, municipality, created_at
from donors
order by created_at desc
limit $1;
`
