package sqlinline

const QInsertDonation = `--sql 396d7ec0-b0bd-4538-a3b9-91799acbf471
insert into donations (id, donor_id, donation_date, location, notes)
values ($1, $2, $3, $4, $5);
`

const QUpdateDonation = `--sql 10e95eb5-c470-46b5-87b1-043dc578c812
update donations
set donation_date = $2, location = $3, notes = $4, updated_at = now()
where id = $1;
`

const QDeleteDonation = `--sql 5706a143-5ab1-4fd5-bda1-b209544d261b
delete from donations where id = $1;
`

const QListDonationsByDonor = `--sql 7472fbff-a811-40f9-9a79-f9217b6d1c80
select id, donor_id, donation_date, location, notes, created_at, updated_at
from donations
where donor_id = $1
order by donation_date desc;
`

const QListDonationsWithDonors = `--sql 93ca823d-7642-4814-be1c-5855768447a7
select dn.id, dn.donor_id, dn.donation_date, dn.location, dn.notes, dn.created_at, dn.updated_at,
       d.id, d.name, d.blood_group, d.phone, d.province, d.district, d.municipality, d.created_at
from donations dn
join donors d on d.id = dn.donor_id
order by dn.donation_date desc;
`

const QDonationStats = `--sql 481b01c9-4879-4b84-915c-8091d0b8565c
select count(*),
       count(*) filter (where donation_date >= $1),
       count(*) filter (where donation_date >= $2)
from donations;
`
